package schemas

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// LoginResponseDTO is a struct that represents a login response
// User is nil when the credentials did not match
type LoginResponseDTO struct {
	Success bool     `json:"success"`
	User    *Usuario `json:"user"`
}

// SuccessDTO is the plain acknowledgement for simple writes.
type SuccessDTO struct {
	Success bool `json:"success"`
}

// CreatedDTO acknowledges a write and carries the generated identifier.
type CreatedDTO struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// MessageDTO is a struct that represents a plain message response
type MessageDTO struct {
	Message string `json:"message"`
}

// CuestionarioCreatedDTO acknowledges a questionnaire submission with the
// generated header id.
type CuestionarioCreatedDTO struct {
	Message string `json:"message"`
	InfoID  int64  `json:"info_id"`
}

// PuestoDTO is a struct that represents a position response
// Riesgos and EPP are the comma-joined distinct catalog names aggregated per
// position; they are nil when the position has no associations of that kind
type PuestoDTO struct {
	ID             int64   `json:"id"`
	AreaID         int64   `json:"area_id"`
	Puesto         string  `json:"puesto"`
	NumeroUsuarios int     `json:"numero_usuarios"`
	Descripcion    string  `json:"descripcion"`
	CriterioEPP    string  `json:"criterio_epp"`
	Riesgos        *string `json:"riesgos"`
	EPP            *string `json:"epp"`
}

// CuestionarioInfoDTO is a struct that represents a questionnaire header
// Free-text fields default to "N/A" when null in storage
type CuestionarioInfoDTO struct {
	ID                 int64  `json:"id"`
	PuestoID           int64  `json:"puesto_id"`
	Nom                string `json:"nom"`
	SubopcionID        int64  `json:"subopcion_id"`
	Observaciones      string `json:"observaciones"`
	Recomendaciones    string `json:"recomendaciones"`
	RecomendacionesEPP string `json:"recomendaciones_epp"`
	Imagen             string `json:"imagen"`
	CreatedAt          string `json:"created_at"`
}

// RespuestaDTO is one stored question/answer pair.
type RespuestaDTO struct {
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}

// CuestionarioCompletoDTO is a struct that represents a full questionnaire
// Info is nil for a nonexistent header; Respuestas is then empty, never nil
type CuestionarioCompletoDTO struct {
	Info       *CuestionarioInfoDTO `json:"info"`
	Respuestas []RespuestaDTO       `json:"respuestas"`
}

// CuestionarioResumenDTO is one row of the questionnaire list of a position,
// with its sub-option label and the count of stored answers.
type CuestionarioResumenDTO struct {
	ID            int64  `json:"id"`
	Nom           string `json:"nom"`
	SubopcionID   int64  `json:"subopcion_id"`
	Subopcion     string `json:"subopcion"`
	NumRespuestas int    `json:"num_respuestas"`
	CreatedAt     string `json:"created_at"`
}

// MetadataDTO describes the running API version.
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}
