package routing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/pashagolub/pgxmock/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"server-sst/internal/managers/mocks"
)

func setupMocks(t *testing.T) (*mocks.MockDatabaseManager, *mocks.MockFileManager, pgxmock.PgxPoolIface) {
	poolMock, err := pgxmock.NewPool()
	if err != nil {
		log.Errorf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	fileMgrMock := &mocks.MockFileManager{}
	fileMgrMock.On("Dir").Return(t.TempDir())

	return databaseMgrMock, fileMgrMock, poolMock
}

func newTestServer(t *testing.T) (*httptest.Server, pgxmock.PgxPoolIface, *mocks.MockFileManager) {
	databaseMgrMock, fileMgrMock, poolMock := setupMocks(t)

	router := InitRouter(databaseMgrMock, fileMgrMock)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, poolMock, fileMgrMock
}

func TestCreatePuesto(t *testing.T) {
	validBody := map[string]interface{}{
		"puesto":          "Soldador",
		"numero_usuarios": 2,
		"descripcion":     "Soldadura de estructuras",
		"riesgos":         []int64{1, 2},
		"epp":             []int64{},
		"criterio_epp":    "Según actividad",
	}

	t.Run("ValidCreation", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectBegin()
		poolMock.ExpectQuery("INSERT INTO puestos").
			WithArgs(int64(3), "Soldador", 2, "Soldadura de estructuras", "Según actividad").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		// The generated position id seeds every association row.
		poolMock.ExpectExec("INSERT INTO puesto_riesgos").
			WithArgs(int64(7), int64(1), int64(7), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		// Empty EPP list: no statement at all for puesto_epp.
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/areas/3/puestos").WithJSON(validBody).Expect().Status(http.StatusCreated)
		response.JSON().IsEqual(map[string]interface{}{"success": true, "id": 7})

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("AssociationFailureRollsBack", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		// The rollback runs in a deferred call that may complete after the
		// error response is already on the wire, so the follow-up read must
		// not depend on expectation order.
		poolMock.MatchExpectationsInOrder(false)

		poolMock.ExpectBegin()
		poolMock.ExpectQuery("INSERT INTO puestos").
			WithArgs(int64(3), "Soldador", 2, "Soldadura de estructuras", "Según actividad").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		poolMock.ExpectExec("INSERT INTO puesto_riesgos").
			WithArgs(int64(7), int64(1), int64(7), int64(2)).
			WillReturnError(errors.New("constraint violation"))
		poolMock.ExpectRollback()
		// A read after the failed unit of work sees no position rows.
		poolMock.ExpectQuery("FROM puestos").
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "area_id", "puesto", "numero_usuarios", "descripcion", "criterio_epp", "riesgos", "epp"}))

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/areas/3/puestos").WithJSON(validBody).Expect().Status(http.StatusInternalServerError)
		// The raw storage error never reaches the client.
		response.JSON().Object().Value("error").Object().Value("code").IsEqual("ERR-002")

		expect.GET("/api/areas/3/puestos").Expect().Status(http.StatusOK).JSON().Array().IsEmpty()

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("MissingTitleRejected", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		body := map[string]interface{}{"numero_usuarios": 1}
		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/areas/3/puestos").WithJSON(body).Expect().Status(http.StatusBadRequest)

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestGetPuestosByArea(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	rows := pgxmock.NewRows([]string{"id", "area_id", "puesto", "numero_usuarios", "descripcion", "criterio_epp", "riesgos", "epp"}).
		AddRow(int64(7), int64(3), "Soldador", 2, "Soldadura de estructuras", "Según actividad", "Altura, Fuego", nil)
	poolMock.ExpectQuery("FROM puestos").WithArgs(int64(3)).WillReturnRows(rows)

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/api/areas/3/puestos").Expect().Status(http.StatusOK)

	puesto := response.JSON().Array().Value(0).Object()
	puesto.Value("id").IsEqual(7)
	// Both risk names aggregated, PPE aggregate stays null for a position
	// without PPE associations.
	puesto.Value("riesgos").IsEqual("Altura, Fuego")
	puesto.Value("epp").IsNull()

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateCuestionario(t *testing.T) {
	dataField := `{"puesto_id":5,"nom":"nom-017","subopcion_id":3,` +
		`"respuestas":[{"pregunta":"Q1","respuesta":"A1"},{"pregunta":"Q2","respuesta":"A2"}],` +
		`"observaciones":"obs","recomendaciones":"rec","recomendaciones_epp":"rec epp"}`

	t.Run("ValidSubmission", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectBegin()
		poolMock.ExpectQuery("INSERT INTO cuestionarios_info").
			WithArgs(int64(5), "nom-017", int64(3), "obs", "rec", "rec epp", nil, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
		// All answers in one statement, the generated header id re-emitted
		// per row.
		poolMock.ExpectExec("INSERT INTO cuestionarios").
			WithArgs(int64(11), int64(5), "nom-017", int64(3), "Q1", "A1",
				int64(11), int64(5), "nom-017", int64(3), "Q2", "A2").
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		poolMock.ExpectCommit()

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/cuestionario").WithMultipart().WithFormField("data", dataField).
			Expect().Status(http.StatusCreated)
		response.JSON().Object().Value("info_id").IsEqual(11)

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("AnswerInsertFailureRollsBack", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectBegin()
		poolMock.ExpectQuery("INSERT INTO cuestionarios_info").
			WithArgs(int64(5), "nom-017", int64(3), "obs", "rec", "rec epp", nil, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
		poolMock.ExpectExec("INSERT INTO cuestionarios").
			WithArgs(int64(11), int64(5), "nom-017", int64(3), "Q1", "A1",
				int64(11), int64(5), "nom-017", int64(3), "Q2", "A2").
			WillReturnError(errors.New("disk full"))
		poolMock.ExpectRollback()

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/cuestionario").WithMultipart().WithFormField("data", dataField).
			Expect().Status(http.StatusInternalServerError)
		response.JSON().Object().Value("error").Object().Value("code").IsEqual("ERR-002")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("MissingDataField", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		// No pool expectations: a bad payload never opens a connection.
		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/cuestionario").WithMultipart().WithFormField("other", "x").
			Expect().Status(http.StatusBadRequest)
		response.JSON().Object().Value("error").Object().Value("message").IsEqual("Datos inválidos")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("UnparseableDataField", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/cuestionario").WithMultipart().WithFormField("data", "{not json").
			Expect().Status(http.StatusBadRequest)
		response.JSON().Object().Value("error").Object().Value("message").IsEqual("Datos inválidos")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("RejectPolicyOnExistingSubmission", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		rejectData := `{"puesto_id":5,"nom":"nom-017","subopcion_id":3,"respuestas":[],"politica":"reject"}`
		poolMock.ExpectQuery("SELECT id FROM cuestionarios_info").
			WithArgs(int64(5), "nom-017", int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/cuestionario").WithMultipart().WithFormField("data", rejectData).
			Expect().Status(http.StatusConflict)
		response.JSON().Object().Value("error").Object().Value("code").IsEqual("ERR-004")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestGetCuestionarioCompleto(t *testing.T) {
	t.Run("ExistingQuestionnaire", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		createdAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
		headerRows := pgxmock.NewRows([]string{"id", "puesto_id", "nom", "subopcion_id", "observaciones",
			"recomendaciones", "recomendaciones_epp", "imagen", "created_at"}).
			AddRow(int64(11), int64(5), "nom-017", int64(3), "obs", nil, nil, nil, createdAt)
		poolMock.ExpectQuery("FROM cuestionarios_info WHERE id").WithArgs(int64(11)).WillReturnRows(headerRows)

		answerRows := pgxmock.NewRows([]string{"pregunta", "respuesta"}).
			AddRow("Q1", "A1").
			AddRow("Q2", "A2")
		poolMock.ExpectQuery("SELECT pregunta, respuesta FROM cuestionarios").WithArgs(int64(11)).WillReturnRows(answerRows)

		expect := httpexpect.Default(t, server.URL)
		response := expect.GET("/api/cuestionario-completo/11").Expect().Status(http.StatusOK)

		body := response.JSON().Object()
		info := body.Value("info").Object()
		info.Value("observaciones").IsEqual("obs")
		// Null header fields default to the "N/A" string.
		info.Value("recomendaciones").IsEqual("N/A")
		info.Value("imagen").IsEqual("N/A")
		// Answers come back in submission order.
		body.Value("respuestas").Array().IsEqual([]map[string]interface{}{
			{"pregunta": "Q1", "respuesta": "A1"},
			{"pregunta": "Q2", "respuesta": "A2"},
		})

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("NonexistentQuestionnaire", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectQuery("FROM cuestionarios_info WHERE id").
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "puesto_id", "nom", "subopcion_id", "observaciones",
				"recomendaciones", "recomendaciones_epp", "imagen", "created_at"}))

		expect := httpexpect.Default(t, server.URL)
		response := expect.GET("/api/cuestionario-completo/99").Expect().Status(http.StatusOK)
		response.JSON().IsEqual(map[string]interface{}{
			"info":       nil,
			"respuestas": []interface{}{},
		})

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		rows := pgxmock.NewRows([]string{"id", "usuario", "nombre", "rol"}).
			AddRow(int64(1), "inspector", "Ana", "supervisor")
		poolMock.ExpectQuery("SELECT id, usuario, nombre, rol FROM usuarios").
			WithArgs("inspector", "secreta").
			WillReturnRows(rows)

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/login").
			WithJSON(map[string]string{"usuario": "inspector", "password": "secreta"}).
			Expect().Status(http.StatusOK)
		response.JSON().Object().Value("success").IsEqual(true)
		response.JSON().Object().Value("user").Object().Value("usuario").IsEqual("inspector")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("WrongCredentials", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectQuery("SELECT id, usuario, nombre, rol FROM usuarios").
			WithArgs("inspector", "equivocada").
			WillReturnRows(pgxmock.NewRows([]string{"id", "usuario", "nombre", "rol"}))

		expect := httpexpect.Default(t, server.URL)
		response := expect.POST("/api/login").
			WithJSON(map[string]string{"usuario": "inspector", "password": "equivocada"}).
			Expect().Status(http.StatusUnauthorized)
		response.JSON().IsEqual(map[string]interface{}{"success": false, "user": nil})

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestCreateArea(t *testing.T) {
	server, poolMock, fileMgrMock := newTestServer(t)

	fileMgrMock.On("SaveUpload", mock.Anything, mock.Anything).Return("/uploads/abc.png", nil)

	poolMock.ExpectExec("INSERT INTO areas").
		WithArgs(int64(1), "Planta Norte", "Nave principal", "/uploads/abc.png").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	expect := httpexpect.Default(t, server.URL)
	response := expect.POST("/api/clientes/1/areas").WithMultipart().
		WithFormField("nombre", "Planta Norte").
		WithFormField("descripcion", "Nave principal").
		WithFileBytes("image", "foto.png", []byte("png-bytes")).
		Expect().Status(http.StatusCreated)
	response.JSON().IsEqual(map[string]interface{}{"success": true})

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAssignNorma(t *testing.T) {
	t.Run("DefaultAppend", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectExec("INSERT INTO puesto_normas").
			WithArgs(int64(7), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/puestos/7/normas").WithJSON(map[string]interface{}{"normaId": 2}).
			Expect().Status(http.StatusCreated).
			JSON().Object().Value("message").IsEqual("Norma asignada correctamente")

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("RejectExistingPair", func(t *testing.T) {
		server, poolMock, _ := newTestServer(t)

		poolMock.ExpectQuery("SELECT COUNT").
			WithArgs(int64(7), int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

		expect := httpexpect.Default(t, server.URL)
		expect.POST("/api/puestos/7/normas").
			WithJSON(map[string]interface{}{"normaId": 2, "politica": "reject"}).
			Expect().Status(http.StatusConflict)

		if err := poolMock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestGetRiesgos(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	rows := pgxmock.NewRows([]string{"id", "nombre"}).
		AddRow(int64(1), "Altura").
		AddRow(int64(2), "Fuego")
	poolMock.ExpectQuery("SELECT id, nombre FROM riesgos").WillReturnRows(rows)

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/api/riesgos").Expect().Status(http.StatusOK)
	response.JSON().Array().IsEqual([]map[string]interface{}{
		{"id": 1, "nombre": "Altura"},
		{"id": 2, "nombre": "Fuego"},
	})

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestGetPuestoNotFound(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	poolMock.ExpectQuery("FROM puestos").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "area_id", "puesto", "numero_usuarios", "descripcion", "criterio_epp", "riesgos", "epp"}))

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/api/puestos/99").Expect().Status(http.StatusOK)
	response.JSON().IsNull()

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestGetCuestionariosByPuesto(t *testing.T) {
	server, poolMock, _ := newTestServer(t)

	newer := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	older := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "nom", "subopcion_id", "nombre", "num_respuestas", "created_at"}).
		AddRow(int64(12), "nom-017", int64(3), "Ruido", 4, newer).
		AddRow(int64(11), "nom-017", int64(2), "Iluminación", 2, older)
	poolMock.ExpectQuery("FROM cuestionarios_info").WithArgs(int64(5)).WillReturnRows(rows)

	expect := httpexpect.Default(t, server.URL)
	response := expect.GET("/api/puestos/5/cuestionarios").Expect().Status(http.StatusOK)

	list := response.JSON().Array()
	list.Length().IsEqual(2)
	list.Value(0).Object().Value("id").IsEqual(12)
	list.Value(0).Object().Value("num_respuestas").IsEqual(4)
	list.Value(1).Object().Value("subopcion").IsEqual("Iluminación")

	if err := poolMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestNoRoute(t *testing.T) {
	server, _, _ := newTestServer(t)

	expect := httpexpect.Default(t, server.URL)
	expect.GET("/api/no-existe").Expect().Status(http.StatusNotFound).
		JSON().IsEqual(map[string]string{"error": "Ruta no encontrada"})
}
