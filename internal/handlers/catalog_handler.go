package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"server-sst/internal/managers"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

// CatalogHdl defines the interface for the read-only catalog routes. All
// catalogs are seeded out of band and never written through this surface.
type CatalogHdl interface {
	GetRiesgos(c *gin.Context)
	GetEPP(c *gin.Context)
	GetNormas(c *gin.Context)
	GetNomSubopciones(c *gin.Context)
	GetPreguntas(c *gin.Context)
}

// CatalogHandler provides methods to serve the catalog routes.
type CatalogHandler struct {
	DatabaseManager managers.DatabaseMgr
}

// NewCatalogHandler returns a new CatalogHandler with the provided database manager.
func NewCatalogHandler(databaseManager *managers.DatabaseMgr) CatalogHdl {
	return &CatalogHandler{
		DatabaseManager: *databaseManager,
	}
}

func (handler *CatalogHandler) GetRiesgos(ctx *gin.Context) {
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, "SELECT id, nombre FROM riesgos ORDER BY nombre")
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	riesgos := make([]schemas.Riesgo, 0)
	for rows.Next() {
		var riesgo schemas.Riesgo
		if err := rows.Scan(&riesgo.ID, &riesgo.Nombre); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		riesgos = append(riesgos, riesgo)
	}

	utils.WriteAndLogResponse(ctx, riesgos, http.StatusOK)
}

func (handler *CatalogHandler) GetEPP(ctx *gin.Context) {
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, "SELECT id, nombre FROM epp ORDER BY nombre")
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	items := make([]schemas.EPP, 0)
	for rows.Next() {
		var item schemas.EPP
		if err := rows.Scan(&item.ID, &item.Nombre); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		items = append(items, item)
	}

	utils.WriteAndLogResponse(ctx, items, http.StatusOK)
}

func (handler *CatalogHandler) GetNormas(ctx *gin.Context) {
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, "SELECT id, nombre, descripcion FROM normas ORDER BY id")
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	normas := make([]schemas.Norma, 0)
	for rows.Next() {
		var norma schemas.Norma
		if err := rows.Scan(&norma.ID, &norma.Nombre, &norma.Descripcion); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		normas = append(normas, norma)
	}

	utils.WriteAndLogResponse(ctx, normas, http.StatusOK)
}

// GetNomSubopciones lists the sub-options of one norm category.
func (handler *CatalogHandler) GetNomSubopciones(ctx *gin.Context) {
	nom := ctx.Param(utils.NomParamKey)

	queryString := "SELECT id, nom, nombre FROM nom_subopciones WHERE nom = $1 ORDER BY id"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, nom)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	subopciones := make([]schemas.NomSubopcion, 0)
	for rows.Next() {
		var subopcion schemas.NomSubopcion
		if err := rows.Scan(&subopcion.ID, &subopcion.Nom, &subopcion.Nombre); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		subopciones = append(subopciones, subopcion)
	}

	utils.WriteAndLogResponse(ctx, subopciones, http.StatusOK)
}

// GetPreguntas lists the question-bank entries of one sub-option type.
func (handler *CatalogHandler) GetPreguntas(ctx *gin.Context) {
	subopcionTipo := ctx.Param(utils.SubopcionTipoParamKey)

	queryString := "SELECT id, subopcion_tipo, pregunta FROM preguntas WHERE subopcion_tipo = $1 ORDER BY id"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, subopcionTipo)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	preguntas := make([]schemas.Pregunta, 0)
	for rows.Next() {
		var pregunta schemas.Pregunta
		if err := rows.Scan(&pregunta.ID, &pregunta.SubopcionTipo, &pregunta.Pregunta); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		preguntas = append(preguntas, pregunta)
	}

	utils.WriteAndLogResponse(ctx, preguntas, http.StatusOK)
}
