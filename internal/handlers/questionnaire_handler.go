package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"server-sst/internal/managers"
	"server-sst/internal/schemas"
	"server-sst/internal/utils"
)

// QuestionnaireHdl defines the interface for handling questionnaire requests.
type QuestionnaireHdl interface {
	CreateCuestionario(c *gin.Context)
	GetCuestionarioInfo(c *gin.Context)
	GetCuestionarioCompleto(c *gin.Context)
	GetCuestionariosByPuesto(c *gin.Context)
}

// QuestionnaireHandler provides methods to handle questionnaire requests.
type QuestionnaireHandler struct {
	DatabaseManager managers.DatabaseMgr
	FileManager     managers.FileMgr
}

var errMissingData = errors.New("missing or unparseable data field")

// NewQuestionnaireHandler returns a new QuestionnaireHandler with the provided managers.
func NewQuestionnaireHandler(databaseManager *managers.DatabaseMgr, fileManager *managers.FileMgr) QuestionnaireHdl {
	return &QuestionnaireHandler{
		DatabaseManager: *databaseManager,
		FileManager:     *fileManager,
	}
}

// CreateCuestionario persists a questionnaire header together with all its
// answer rows as one unit of work. The request is multipart: the structured
// payload travels as a JSON document in the `data` field because the optional
// image occupies the binary part. Payload parsing happens before any
// connection is taken, so a bad submission never opens a transaction.
func (handler *QuestionnaireHandler) CreateCuestionario(ctx *gin.Context) {
	dataField := ctx.PostForm("data")
	if dataField == "" {
		utils.WriteAndLogError(ctx, schemas.InvalidPayload, errMissingData)
		return
	}

	var data schemas.CuestionarioData
	if err := json.Unmarshal([]byte(dataField), &data); err != nil {
		utils.WriteAndLogError(ctx, schemas.InvalidPayload, err)
		return
	}

	politica := data.Politica
	if politica == "" {
		politica = schemas.PolicyAppend
	}

	pool := handler.DatabaseManager.GetPool()

	if politica != schemas.PolicyAppend {
		var existingId int64
		queryString := `SELECT id FROM cuestionarios_info WHERE puesto_id = $1 AND nom = $2 AND subopcion_id = $3
						ORDER BY created_at DESC LIMIT 1`
		err := pool.QueryRow(ctx, queryString, data.PuestoID, data.Nom, data.SubopcionID).Scan(&existingId)
		switch {
		case err == nil && politica == schemas.PolicyReject:
			utils.WriteAndLogError(ctx, schemas.DuplicateEntry, errors.New("questionnaire already submitted"))
			return
		case err == nil:
			// merge: keep the existing submission
			utils.WriteAndLogResponse(ctx, &schemas.CuestionarioCreatedDTO{Message: "Cuestionario existente", InfoID: existingId}, http.StatusOK)
			return
		case !errors.Is(err, pgx.ErrNoRows):
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
	}

	// The image is stored before the transaction; only its path takes part
	// in the unit of work.
	var imagen interface{}
	if file, err := ctx.FormFile("image"); err == nil {
		path, err := handler.FileManager.SaveUpload(ctx, file)
		if err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		imagen = path
	}

	tx := utils.BeginTransaction(ctx, pool)
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	queryString := `INSERT INTO cuestionarios_info
					(puesto_id, nom, subopcion_id, observaciones, recomendaciones, recomendaciones_epp, imagen, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	row := tx.QueryRow(ctx, queryString, data.PuestoID, data.Nom, data.SubopcionID, data.Observaciones,
		data.Recomendaciones, data.RecomendacionesEPP, imagen, time.Now())

	var infoId int64
	if err := row.Scan(&infoId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	answerRows := make([][]interface{}, 0, len(data.Respuestas))
	for _, respuesta := range data.Respuestas {
		answerRows = append(answerRows, []interface{}{respuesta.Pregunta, respuesta.Respuesta})
	}

	statement, err := utils.BuildMultiRowInsert("cuestionarios",
		[]string{"info_id", "puesto_id", "nom", "subopcion_id", "pregunta", "respuesta"},
		[]interface{}{infoId, data.PuestoID, data.Nom, data.SubopcionID}, answerRows)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	if statement != nil {
		if _, err := tx.Exec(ctx, statement.SQL, statement.Args...); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
	}

	if err := utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	response := &schemas.CuestionarioCreatedDTO{Message: "Cuestionario guardado correctamente", InfoID: infoId}
	utils.WriteAndLogResponse(ctx, response, http.StatusCreated)
}

// GetCuestionarioInfo returns the newest questionnaire header of one position,
// category and sub-option, or null when none exists.
func (handler *QuestionnaireHandler) GetCuestionarioInfo(ctx *gin.Context) {
	puestoId, ok := utils.ParseIdParam(ctx, utils.PuestoIdParamKey)
	if !ok {
		return
	}
	subopcionId, ok := utils.ParseIdParam(ctx, utils.SubopcionIdParamKey)
	if !ok {
		return
	}
	nom := ctx.Param(utils.NomParamKey)

	queryString := `SELECT id, puesto_id, nom, subopcion_id, observaciones, recomendaciones, recomendaciones_epp, imagen, created_at
					FROM cuestionarios_info WHERE puesto_id = $1 AND nom = $2 AND subopcion_id = $3
					ORDER BY created_at DESC LIMIT 1`
	row := handler.DatabaseManager.GetPool().QueryRow(ctx, queryString, puestoId, nom, subopcionId)

	info, err := scanCuestionarioInfo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogResponse(ctx, nil, http.StatusOK)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	utils.WriteAndLogResponse(ctx, info, http.StatusOK)
}

// GetCuestionarioCompleto returns a questionnaire header and its ordered
// answers. A nonexistent id yields {info:null, respuestas:[]}, not an error.
func (handler *QuestionnaireHandler) GetCuestionarioCompleto(ctx *gin.Context) {
	infoId, ok := utils.ParseIdParam(ctx, utils.InfoIdParamKey)
	if !ok {
		return
	}

	pool := handler.DatabaseManager.GetPool()

	queryString := `SELECT id, puesto_id, nom, subopcion_id, observaciones, recomendaciones, recomendaciones_epp, imagen, created_at
					FROM cuestionarios_info WHERE id = $1`
	row := pool.QueryRow(ctx, queryString, infoId)

	respuestas := make([]schemas.RespuestaDTO, 0)

	info, err := scanCuestionarioInfo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogResponse(ctx, &schemas.CuestionarioCompletoDTO{Info: nil, Respuestas: respuestas}, http.StatusOK)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}

	queryString = "SELECT pregunta, respuesta FROM cuestionarios WHERE info_id = $1 ORDER BY id ASC"
	rows, err := pool.Query(ctx, queryString, infoId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var respuesta schemas.RespuestaDTO
		if err := rows.Scan(&respuesta.Pregunta, &respuesta.Respuesta); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		respuestas = append(respuestas, respuesta)
	}

	utils.WriteAndLogResponse(ctx, &schemas.CuestionarioCompletoDTO{Info: info, Respuestas: respuestas}, http.StatusOK)
}

// GetCuestionariosByPuesto lists the questionnaire headers of one position
// with their sub-option label and answer count, newest first.
func (handler *QuestionnaireHandler) GetCuestionariosByPuesto(ctx *gin.Context) {
	puestoId, ok := utils.ParseIdParam(ctx, utils.PuestoIdParamKey)
	if !ok {
		return
	}

	queryString := `SELECT ci.id, ci.nom, ci.subopcion_id, COALESCE(ns.nombre, ''), COUNT(c.id) AS num_respuestas, ci.created_at
					FROM cuestionarios_info ci
					LEFT JOIN nom_subopciones ns ON ns.id = ci.subopcion_id
					LEFT JOIN cuestionarios c ON c.info_id = ci.id
					WHERE ci.puesto_id = $1
					GROUP BY ci.id, ns.nombre
					ORDER BY ci.created_at DESC`

	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, puestoId)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
		return
	}
	defer rows.Close()

	resumenes := make([]schemas.CuestionarioResumenDTO, 0)
	for rows.Next() {
		var resumen schemas.CuestionarioResumenDTO
		var createdAt time.Time
		if err := rows.Scan(&resumen.ID, &resumen.Nom, &resumen.SubopcionID, &resumen.Subopcion,
			&resumen.NumRespuestas, &createdAt); err != nil {
			utils.WriteAndLogError(ctx, schemas.DatabaseError, err)
			return
		}
		resumen.CreatedAt = createdAt.Format(time.RFC3339)
		resumenes = append(resumenes, resumen)
	}

	utils.WriteAndLogResponse(ctx, resumenes, http.StatusOK)
}

// scanCuestionarioInfo scans one header row. Null free-text and image fields
// default to the "N/A" string in the response.
func scanCuestionarioInfo(row pgx.Row) (*schemas.CuestionarioInfoDTO, error) {
	info := &schemas.CuestionarioInfoDTO{}
	var observaciones, recomendaciones, recomendacionesEPP, imagen pgtype.Text
	var createdAt time.Time

	if err := row.Scan(&info.ID, &info.PuestoID, &info.Nom, &info.SubopcionID, &observaciones,
		&recomendaciones, &recomendacionesEPP, &imagen, &createdAt); err != nil {
		return nil, err
	}

	info.Observaciones = textOrNA(observaciones)
	info.Recomendaciones = textOrNA(recomendaciones)
	info.RecomendacionesEPP = textOrNA(recomendacionesEPP)
	info.Imagen = textOrNA(imagen)
	info.CreatedAt = createdAt.Format(time.RFC3339)

	return info, nil
}

func textOrNA(text pgtype.Text) string {
	if text.Valid && text.String != "" {
		return text.String
	}
	return "N/A"
}
