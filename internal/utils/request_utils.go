// package utils provides utility functions to support various operations within the application.
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"server-sst/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it to the HTTP response
// with the provided status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the underlying error with full detail and sends the
// client-facing taxonomy error. The HTTP status comes from the central
// registry, never from the call site.
func WriteAndLogError(ctx *gin.Context, customErr *schemas.CustomError, err error) {
	LogMessageWithFields(ctx, "error", "Error occurred: "+err.Error())
	LogMessageWithFields(ctx, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	errorDto := &schemas.ErrorDTO{
		Error: *customErr,
	}
	ctx.JSON(schemas.StatusOf(customErr), errorDto)
}

// ParseIdParam reads a numeric routing parameter. A non-numeric value reports
// BadRequest to the client and returns false.
func ParseIdParam(ctx *gin.Context, key string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(key), 10, 64)
	if err != nil {
		WriteAndLogError(ctx, schemas.BadRequest, err)
		return 0, false
	}
	return id, true
}
