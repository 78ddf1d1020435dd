package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

// ValidateAndSanitizeStruct binds the JSON body into a fresh instance of the
// given struct type and validates it. On any failure the request is aborted
// with InvalidPayload before a handler runs; on success the payload is stored
// in the context. A new instance per request keeps concurrent bindings from
// sharing state.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	objType := reflect.TypeOf(obj).Elem()

	return func(c *gin.Context) {
		payload := reflect.New(objType).Interface()

		if err := c.ShouldBindJSON(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.InvalidPayload})
			return
		}

		validator := utils.GetValidator()
		if err := validator.Validate.Struct(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.InvalidPayload})
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), payload)
		c.Next()
	}
}
