// Package schemas defines the request structures for various operations in the application.
package schemas

// Duplicate policies for association writes. Append matches the inherited
// behavior and is the default; reject fails with DuplicateEntry when the
// record already exists; merge succeeds without inserting a second copy.
const (
	PolicyAppend = "append"
	PolicyReject = "reject"
	PolicyMerge  = "merge"
)

// LoginRequest is a struct that represents a login request
// Usuario is required and must be less than 50 characters
// Password is required
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

// CreateClienteRequest is a struct that represents a create client request
// Empresa is required and must be less than 150 characters
type CreateClienteRequest struct {
	Empresa   string `json:"empresa" validate:"required,max=150"`
	Contacto  string `json:"contacto" validate:"max=150"`
	Telefono  string `json:"telefono" validate:"max=30"`
	Direccion string `json:"direccion" validate:"max=250"`
	Rol       string `json:"rol" validate:"max=50"`
}

// CreatePuestoRequest is a struct that represents a create position request
// Puesto is required; Riesgos and EPP carry catalog ids for the two
// association tables and may be empty
type CreatePuestoRequest struct {
	Puesto         string  `json:"puesto" validate:"required,max=150"`
	NumeroUsuarios int     `json:"numero_usuarios" validate:"gte=0"`
	Descripcion    string  `json:"descripcion"`
	Riesgos        []int64 `json:"riesgos"`
	EPP            []int64 `json:"epp"`
	CriterioEPP    string  `json:"criterio_epp"`
}

// AssignNormaRequest is a struct that represents a norm assignment request
// NormaID is required; Politica selects the duplicate policy and defaults
// to append when empty
type AssignNormaRequest struct {
	NormaID  int64  `json:"normaId" validate:"required"`
	Politica string `json:"politica" validate:"omitempty,oneof=append reject merge"`
}

// RespuestaPayload is one question/answer pair of a questionnaire submission.
type RespuestaPayload struct {
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}

// CuestionarioData is the JSON document carried by the multipart `data` field
// of a questionnaire submission. The image occupies the binary part, so the
// structured payload travels as encoded text.
type CuestionarioData struct {
	PuestoID           int64              `json:"puesto_id"`
	Nom                string             `json:"nom"`
	SubopcionID        int64              `json:"subopcion_id"`
	Respuestas         []RespuestaPayload `json:"respuestas"`
	Observaciones      string             `json:"observaciones"`
	Recomendaciones    string             `json:"recomendaciones"`
	RecomendacionesEPP string             `json:"recomendaciones_epp"`
	Politica           string             `json:"politica,omitempty"`
}
