package utils

const (
	// ClienteIdParamKey is the key for the client ID used in routing parameters.
	ClienteIdParamKey = "clienteId"

	// AreaIdParamKey is the key for the area ID used in routing parameters.
	AreaIdParamKey = "areaId"

	// PuestoIdParamKey is the key for the position ID used in routing parameters.
	PuestoIdParamKey = "puestoId"

	// InfoIdParamKey is the key for the questionnaire header ID used in routing parameters.
	InfoIdParamKey = "infoId"

	// NomParamKey is the key for the norm category used in routing parameters.
	NomParamKey = "nom"

	// SubopcionIdParamKey is the key for the sub-option ID used in routing parameters.
	SubopcionIdParamKey = "subopcionId"

	// SubopcionTipoParamKey is the key for the sub-option type used in routing parameters.
	SubopcionTipoParamKey = "subopcionTipo"
)
