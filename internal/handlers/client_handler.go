package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"

	"server-sst/internal/managers"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

var errMissingField = errors.New("missing required form field")

// ClientHdl defines the interface for handling client and area requests.
type ClientHdl interface {
	CreateCliente(c *gin.Context)
	GetClientes(c *gin.Context)
	GetAreas(c *gin.Context)
	CreateArea(c *gin.Context)
}

// ClientHandler provides methods to handle client and area requests.
type ClientHandler struct {
	DatabaseManager managers.DatabaseMgr
	FileManager     managers.FileMgr
}

// NewClientHandler returns a new ClientHandler with the provided managers.
func NewClientHandler(databaseManager *managers.DatabaseMgr, fileManager *managers.FileMgr) ClientHdl {
	return &ClientHandler{
		DatabaseManager: *databaseManager,
		FileManager:     *fileManager,
	}
}

// CreateCliente persists a new client row.
func (handler *ClientHandler) CreateCliente(ctx *gin.Context) {
	createClienteRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateClienteRequest)

	queryString := "INSERT INTO clientes (empresa, contacto, telefono, direccion, rol) VALUES ($1, $2, $3, $4, $5)"
	_, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, createClienteRequest.Empresa,
		createClienteRequest.Contacto, createClienteRequest.Telefono, createClienteRequest.Direccion,
		createClienteRequest.Rol)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.SuccessDTO{Success: true}, http.StatusCreated)
}

// GetClientes lists all clients, newest first.
func (handler *ClientHandler) GetClientes(ctx *gin.Context) {
	queryString := "SELECT id, empresa, contacto, telefono, direccion, rol FROM clientes ORDER BY id DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	clientes := make([]schemas.Cliente, 0)
	for rows.Next() {
		var cliente schemas.Cliente
		if err := rows.Scan(&cliente.ID, &cliente.Empresa, &cliente.Contacto, &cliente.Telefono,
			&cliente.Direccion, &cliente.Rol); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		clientes = append(clientes, cliente)
	}

	utils.WriteAndLogResponse(ctx, clientes, http.StatusOK)
}

// GetAreas lists the areas of one client.
func (handler *ClientHandler) GetAreas(ctx *gin.Context) {
	clienteId, ok := utils.ParseIdParam(ctx, utils.ClienteIdParamKey)
	if !ok {
		return
	}

	queryString := "SELECT id, cliente_id, nombre, descripcion, imagen FROM areas WHERE cliente_id = $1 ORDER BY id"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, clienteId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	areas := make([]schemas.Area, 0)
	for rows.Next() {
		var area schemas.Area
		var imagen pgtype.Text
		if err := rows.Scan(&area.ID, &area.ClienteID, &area.Nombre, &area.Descripcion, &imagen); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		if imagen.Valid {
			area.Imagen = &imagen.String
		}
		areas = append(areas, area)
	}

	utils.WriteAndLogResponse(ctx, areas, http.StatusOK)
}

// CreateArea persists a new area for a client. The request is multipart: the
// fields arrive as form values and the optional image occupies the binary
// part. Storing the file and inserting the row are deliberately separate
// steps, not one transaction.
func (handler *ClientHandler) CreateArea(ctx *gin.Context) {
	clienteId, ok := utils.ParseIdParam(ctx, utils.ClienteIdParamKey)
	if !ok {
		return
	}

	nombre := ctx.PostForm("nombre")
	if nombre == "" {
		utils.WriteAndLogError(ctx, schemas.InvalidPayload, errMissingField)
		return
	}
	descripcion := ctx.PostForm("descripcion")

	var imagen interface{}
	if file, err := ctx.FormFile("image"); err == nil {
		path, err := handler.FileManager.SaveUpload(ctx, file)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		imagen = path
	}

	queryString := "INSERT INTO areas (cliente_id, nombre, descripcion, imagen) VALUES ($1, $2, $3, $4)"
	_, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, clienteId, nombre, descripcion, imagen)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.SuccessDTO{Success: true}, http.StatusCreated)
}
