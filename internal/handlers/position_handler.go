package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"server-sst/internal/managers"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

// PositionHdl defines the interface for handling position-related HTTP requests.
type PositionHdl interface {
	CreatePuesto(c *gin.Context)
	GetPuestosByArea(c *gin.Context)
	GetPuesto(c *gin.Context)
	GetNormasByPuesto(c *gin.Context)
	AssignNorma(c *gin.Context)
}

// PositionHandler provides methods to handle position-related HTTP requests.
type PositionHandler struct {
	DatabaseManager managers.DatabaseMgr
}

// NewPositionHandler returns a new PositionHandler with the provided database manager.
func NewPositionHandler(databaseManager *managers.DatabaseMgr) PositionHdl {
	return &PositionHandler{
		DatabaseManager: *databaseManager,
	}
}

// CreatePuesto persists a position together with its risk and PPE
// associations as one unit of work. The position insert returns the generated
// id, which seeds every association row; both association inserts go out as
// single multi-row statements. Any failure rolls the whole unit back.
func (handler *PositionHandler) CreatePuesto(ctx *gin.Context) {
	areaId, ok := utils.ParseIdParam(ctx, utils.AreaIdParamKey)
	if !ok {
		return
	}

	createPuestoRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreatePuestoRequest)

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	queryString := `INSERT INTO puestos (area_id, puesto, numero_usuarios, descripcion, criterio_epp)
					VALUES ($1, $2, $3, $4, $5) RETURNING id`
	row := tx.QueryRow(ctx, queryString, areaId, createPuestoRequest.Puesto, createPuestoRequest.NumeroUsuarios,
		createPuestoRequest.Descripcion, createPuestoRequest.CriterioEPP)

	var puestoId int64
	if err := row.Scan(&puestoId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	if err := insertAssociations(ctx, tx, "puesto_riesgos", "riesgo_id", puestoId, createPuestoRequest.Riesgos); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	if err := insertAssociations(ctx, tx, "puesto_epp", "epp_id", puestoId, createPuestoRequest.EPP); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.CreatedDTO{Success: true, ID: puestoId}, http.StatusCreated)
}

// insertAssociations writes all catalog links of one join table in a single
// multi-row statement, with the position id re-emitted per group. An empty id
// list issues no statement at all.
func insertAssociations(ctx *gin.Context, tx pgx.Tx, table, column string, puestoId int64, catalogIds []int64) error {
	rows := make([][]interface{}, 0, len(catalogIds))
	for _, id := range catalogIds {
		rows = append(rows, []interface{}{id})
	}

	statement, err := utils.BuildMultiRowInsert(table, []string{"puesto_id", column}, []interface{}{puestoId}, rows)
	if err != nil {
		return err
	}
	if statement == nil {
		return nil
	}

	_, err = tx.Exec(ctx, statement.SQL, statement.Args...)
	return err
}

// GetPuestosByArea lists the positions of one area with their risk and PPE
// catalog names flattened into comma-joined aggregates. Positions without
// associations still appear, with null aggregates.
func (handler *PositionHandler) GetPuestosByArea(ctx *gin.Context) {
	areaId, ok := utils.ParseIdParam(ctx, utils.AreaIdParamKey)
	if !ok {
		return
	}

	queryString := `SELECT p.id, p.area_id, p.puesto, p.numero_usuarios, p.descripcion, p.criterio_epp,
					string_agg(DISTINCT r.nombre, ', ') AS riesgos,
					string_agg(DISTINCT e.nombre, ', ') AS epp
					FROM puestos p
					LEFT JOIN puesto_riesgos pr ON pr.puesto_id = p.id
					LEFT JOIN riesgos r ON r.id = pr.riesgo_id
					LEFT JOIN puesto_epp pe ON pe.puesto_id = p.id
					LEFT JOIN epp e ON e.id = pe.epp_id
					WHERE p.area_id = $1
					GROUP BY p.id ORDER BY p.id`

	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, areaId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	puestos := make([]schemas.PuestoDTO, 0)
	for rows.Next() {
		puesto, err := scanPuestoRow(rows)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		puestos = append(puestos, puesto)
	}

	utils.WriteAndLogResponse(ctx, puestos, http.StatusOK)
}

// GetPuesto returns one position with its aggregates, or null when absent.
func (handler *PositionHandler) GetPuesto(ctx *gin.Context) {
	puestoId, ok := utils.ParseIdParam(ctx, utils.PuestoIdParamKey)
	if !ok {
		return
	}

	queryString := `SELECT p.id, p.area_id, p.puesto, p.numero_usuarios, p.descripcion, p.criterio_epp,
					string_agg(DISTINCT r.nombre, ', ') AS riesgos,
					string_agg(DISTINCT e.nombre, ', ') AS epp
					FROM puestos p
					LEFT JOIN puesto_riesgos pr ON pr.puesto_id = p.id
					LEFT JOIN riesgos r ON r.id = pr.riesgo_id
					LEFT JOIN puesto_epp pe ON pe.puesto_id = p.id
					LEFT JOIN epp e ON e.id = pe.epp_id
					WHERE p.id = $1
					GROUP BY p.id`

	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, puestoId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	if !rows.Next() {
		utils.WriteAndLogResponse(ctx, nil, http.StatusOK)
		return
	}

	puesto, err := scanPuestoRow(rows)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, puesto, http.StatusOK)
}

func scanPuestoRow(rows pgx.Rows) (schemas.PuestoDTO, error) {
	var puesto schemas.PuestoDTO
	var riesgos, epp pgtype.Text

	if err := rows.Scan(&puesto.ID, &puesto.AreaID, &puesto.Puesto, &puesto.NumeroUsuarios,
		&puesto.Descripcion, &puesto.CriterioEPP, &riesgos, &epp); err != nil {
		return schemas.PuestoDTO{}, err
	}

	if riesgos.Valid {
		puesto.Riesgos = &riesgos.String
	}
	if epp.Valid {
		puesto.EPP = &epp.String
	}

	return puesto, nil
}

// GetNormasByPuesto lists the norms assigned to one position.
func (handler *PositionHandler) GetNormasByPuesto(ctx *gin.Context) {
	puestoId, ok := utils.ParseIdParam(ctx, utils.PuestoIdParamKey)
	if !ok {
		return
	}

	queryString := `SELECT n.id, n.nombre, n.descripcion FROM normas n
					INNER JOIN puesto_normas pn ON pn.norma_id = n.id
					WHERE pn.puesto_id = $1 ORDER BY n.id`
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, puestoId)
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

// AssignNorma links a norm to a position. The duplicate policy comes from the
// caller: append (default) always adds the row, reject fails when the pair
// already exists, merge leaves an existing pair untouched.
func (handler *PositionHandler) AssignNorma(ctx *gin.Context) {
	puestoId, ok := utils.ParseIdParam(ctx, utils.PuestoIdParamKey)
	if !ok {
		return
	}

	assignNormaRequest := ctx.Value(utils.SanitizedPayloadKey.String()).(*schemas.AssignNormaRequest)
	politica := assignNormaRequest.Politica
	if politica == "" {
		politica = schemas.PolicyAppend
	}

	pool := handler.DatabaseManager.GetPool()

	if politica != schemas.PolicyAppend {
		var existing int
		queryString := "SELECT COUNT(*) FROM puesto_normas WHERE puesto_id = $1 AND norma_id = $2"
		if err := pool.QueryRow(ctx, queryString, puestoId, assignNormaRequest.NormaID).Scan(&existing); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}

		if existing > 0 {
			if politica == schemas.PolicyReject {
				utils.WriteAndLogError(ctx, schemas.DuplicateEntry, errors.New("norm already assigned to position"))
				return
			}
			// merge: keep the existing pair
			utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Norma ya asignada"}, http.StatusOK)
			return
		}
	}

	queryString := "INSERT INTO puesto_normas (puesto_id, norma_id) VALUES ($1, $2)"
	if _, err := pool.Exec(ctx, queryString, puestoId, assignNormaRequest.NormaID); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Norma asignada correctamente"}, http.StatusCreated)
}
