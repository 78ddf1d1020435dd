package schemas

import "net/http"

// CustomError is a struct that represents a client-facing error
// Code is a stable identifier for the error kind
// Message is the message shown to the client, never the raw storage error
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	// InvalidPayload is returned when the request body or the multipart data
	// field is missing, unparseable or fails validation.
	InvalidPayload = &CustomError{Code: "ERR-001", Message: "Datos inválidos"}

	// DatabaseError is the generic signal for any storage failure. The
	// underlying error is logged server-side and never sent to the client.
	DatabaseError = &CustomError{Code: "ERR-002", Message: "Error interno del servidor"}

	// PoolTimeout is returned when a connection could not be acquired within
	// the configured bound.
	PoolTimeout = &CustomError{Code: "ERR-003", Message: "Servicio no disponible, intente más tarde"}

	// DuplicateEntry is returned when the caller requested the reject policy
	// and the record already exists.
	DuplicateEntry = &CustomError{Code: "ERR-004", Message: "El registro ya existe"}

	// BadRequest covers malformed path or query parameters.
	BadRequest = &CustomError{Code: "ERR-005", Message: "Solicitud inválida"}
)

// statusRegistry maps each error kind to its HTTP status. Handlers never pick
// statuses themselves, so the mapping lives in exactly one place.
var statusRegistry = map[*CustomError]int{
	InvalidPayload: http.StatusBadRequest,
	DatabaseError:  http.StatusInternalServerError,
	PoolTimeout:    http.StatusServiceUnavailable,
	DuplicateEntry: http.StatusConflict,
	BadRequest:     http.StatusBadRequest,
}

// StatusOf returns the HTTP status for a taxonomy error, defaulting to 500
// for unregistered kinds.
func StatusOf(customErr *CustomError) int {
	if status, ok := statusRegistry[customErr]; ok {
		return status
	}
	return http.StatusInternalServerError
}
