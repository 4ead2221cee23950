package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"notebook_forms_go/config"
	"notebook_forms_go/db"
	"notebook_forms_go/models"
	"notebook_forms_go/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Generation{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = nil })

	return testDB
}

func setupStorage(t *testing.T) *services.LocalStorage {
	storage := services.NewLocalStorage(t.TempDir())
	services.Storage = storage
	t.Cleanup(func() { services.Storage = nil })
	return storage
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		MaxPages:         config.PageLimit,
		PDFEngine:        services.PDFEngineNative,
		DefaultPaperSize: "letter",
		HistoryEnabled:   true,
		EmailTestMode:    true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	return setupEchoWithConfig(method, path, body, testConfig())
}

func setupEchoWithConfig(method, path string, body io.Reader, cfg *config.Config) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", cfg)

	return e, c, rec
}
