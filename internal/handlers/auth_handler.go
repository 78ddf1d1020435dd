// Package handlers implements the handlers for the different routes of the server to handle the incoming HTTP requests.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"server-sst/internal/managers"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

// AuthHdl defines the interface for handling authentication requests.
type AuthHdl interface {
	Login(c *gin.Context)
}

// AuthHandler provides methods to handle authentication requests.
type AuthHandler struct {
	DatabaseManager managers.DatabaseMgr
}

// NewAuthHandler returns a new AuthHandler with the provided database manager.
func NewAuthHandler(databaseManager *managers.DatabaseMgr) AuthHdl {
	return &AuthHandler{
		DatabaseManager: *databaseManager,
	}
}

// Login compares the submitted credentials against the stored ones and returns
// the matching user. Credentials are compared directly; hardening the scheme
// is out of scope for this surface.
func (handler *AuthHandler) Login(ctx *gin.Context) {
	loginRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	queryString := "SELECT id, usuario, nombre, rol FROM usuarios WHERE usuario = $1 AND password = $2"
	row := handler.DatabaseManager.GetPool().QueryRow(ctx, queryString, loginRequest.Usuario, loginRequest.Password)

	user := &schemas.Usuario{}
	if err := row.Scan(&user.ID, &user.Usuario, &user.Nombre, &user.Rol); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogResponse(ctx, &schemas.LoginResponseDTO{Success: false, User: nil}, http.StatusUnauthorized)
			return
		}

		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.LoginResponseDTO{Success: true, User: user}, http.StatusOK)
}
