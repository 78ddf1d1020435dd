// Package schemas defines the data structures
package schemas

import "time"

// Usuario represents the data model for an application user.
type Usuario struct {
	ID      int64  `json:"id"`      // Unique identifier for the user.
	Usuario string `json:"usuario"` // Login name of the user.
	Nombre  string `json:"nombre"`  // Display name of the user.
	Rol     string `json:"rol"`     // Role label of the user.
}

// Cliente represents a client company that owns work areas.
type Cliente struct {
	ID        int64      `json:"id"`
	Empresa   string     `json:"empresa"`
	Contacto  string     `json:"contacto"`
	Telefono  string     `json:"telefono"`
	Direccion string     `json:"direccion"`
	Rol       string     `json:"rol"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Area represents a work area belonging to exactly one client.
type Area struct {
	ID          int64   `json:"id"`
	ClienteID   int64   `json:"cliente_id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Imagen      *string `json:"imagen"` // Relative path under /uploads/, nil if no image was stored.
}

// Riesgo is a catalog entry for an occupational risk, referenced by id from
// position associations.
type Riesgo struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// EPP is a catalog entry for a personal protective equipment item.
type EPP struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Norma is a catalog entry for a regulatory norm, many-to-many with positions.
type Norma struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// NomSubopcion groups questionnaire headers under a category key.
type NomSubopcion struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Nombre string `json:"nombre"`
}

// Pregunta is a question-bank entry keyed by a sub-option type, independent of
// any specific questionnaire instance.
type Pregunta struct {
	ID            int64  `json:"id"`
	SubopcionTipo string `json:"subopcion_tipo"`
	Pregunta      string `json:"pregunta"`
}
