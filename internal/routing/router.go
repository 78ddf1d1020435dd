// Package routing wires the HTTP route table onto the gin engine.
package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"server-sst/internal/handlers"
	"server-sst/internal/managers"
	"server-sst/internal/middleware"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, fileMgr managers.FileMgr) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	// Initialize middleware
	setupCommonMiddleware(router)
	// Setup routes
	setupRoutes(router, databaseMgr, fileMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "Origin"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, fileMgr managers.FileMgr) {
	// Set up version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		metadata := &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Server SST",
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		// Ping the database
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	// Serve uploaded images as static files
	router.Static("/uploads", fileMgr.Dir())

	// Unmatched routes answer with the canonical not-found body
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ruta no encontrada"})
	})

	// Set up API routes
	apiRouter := router.Group("/api")
	{
		authHdl := handlers.NewAuthHandler(&databaseMgr)
		apiRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), authHdl.Login)

		clientHdl := handlers.NewClientHandler(&databaseMgr, &fileMgr)
		clientRoutes(apiRouter, clientHdl)

		positionHdl := handlers.NewPositionHandler(&databaseMgr)
		positionRoutes(apiRouter, positionHdl)

		catalogHdl := handlers.NewCatalogHandler(&databaseMgr)
		catalogRoutes(apiRouter, catalogHdl)

		questionnaireHdl := handlers.NewQuestionnaireHandler(&databaseMgr, &fileMgr)
		questionnaireRoutes(apiRouter, questionnaireHdl)
	}
}

func clientRoutes(apiRouter *gin.RouterGroup, clientHdl handlers.ClientHdl) {
	apiRouter.POST("/cliente", middleware.ValidateAndSanitizeStruct(&schemas.CreateClienteRequest{}), clientHdl.CreateCliente)
	apiRouter.GET("/clientes", clientHdl.GetClientes)
	apiRouter.GET("/clientes/:clienteId/areas", clientHdl.GetAreas)
	// Multipart request, bound inside the handler rather than by the JSON middleware
	apiRouter.POST("/clientes/:clienteId/areas", clientHdl.CreateArea)
}

func positionRoutes(apiRouter *gin.RouterGroup, positionHdl handlers.PositionHdl) {
	apiRouter.GET("/areas/:areaId/puestos", positionHdl.GetPuestosByArea)
	apiRouter.POST("/areas/:areaId/puestos", middleware.ValidateAndSanitizeStruct(&schemas.CreatePuestoRequest{}), positionHdl.CreatePuesto)
	apiRouter.GET("/puestos/:puestoId", positionHdl.GetPuesto)
	apiRouter.GET("/puestos/:puestoId/normas", positionHdl.GetNormasByPuesto)
	apiRouter.POST("/puestos/:puestoId/normas", middleware.ValidateAndSanitizeStruct(&schemas.AssignNormaRequest{}), positionHdl.AssignNorma)
}

func catalogRoutes(apiRouter *gin.RouterGroup, catalogHdl handlers.CatalogHdl) {
	apiRouter.GET("/riesgos", catalogHdl.GetRiesgos)
	apiRouter.GET("/epp", catalogHdl.GetEPP)
	apiRouter.GET("/normas", catalogHdl.GetNormas)
	apiRouter.GET("/nom-subopciones/:nom", catalogHdl.GetNomSubopciones)
	apiRouter.GET("/preguntas/:subopcionTipo", catalogHdl.GetPreguntas)
}

func questionnaireRoutes(apiRouter *gin.RouterGroup, questionnaireHdl handlers.QuestionnaireHdl) {
	// Multipart request, the structured payload travels in the `data` field
	apiRouter.POST("/cuestionario", questionnaireHdl.CreateCuestionario)
	apiRouter.GET("/cuestionarios-info/:puestoId/:nom/:subopcionId", questionnaireHdl.GetCuestionarioInfo)
	apiRouter.GET("/cuestionario-completo/:infoId", questionnaireHdl.GetCuestionarioCompleto)
	apiRouter.GET("/puestos/:puestoId/cuestionarios", questionnaireHdl.GetCuestionariosByPuesto)
}
