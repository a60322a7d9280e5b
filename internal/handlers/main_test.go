package handlers

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/veritrace/batchtrack/internal/collateral"
	"github.com/veritrace/batchtrack/internal/config"
	"github.com/veritrace/batchtrack/internal/database"
	"github.com/veritrace/batchtrack/internal/models"
	"github.com/veritrace/batchtrack/internal/qrstore"
	"github.com/veritrace/batchtrack/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testUsername = "admin"
	testPassword = "secret123"
	testCode     = "RECOVER1"
)

func newTestRouter(t *testing.T, scanValidation bool) *Router {
	t.Helper()

	dir := t.TempDir()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db := &database.DB{DB: gdb}

	if err := db.AutoMigrate(
		&models.Credential{},
		&models.GTINRegistration{},
		&models.ProductBatch{},
		&models.CustomerScan{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	qr, err := qrstore.New(filepath.Join(dir, "qr"))
	if err != nil {
		t.Fatalf("Failed to create qr store: %v", err)
	}
	coll, err := collateral.New(filepath.Join(dir, "pdf"), filepath.Join(dir, "jpeg"))
	if err != nil {
		t.Fatalf("Failed to create collateral store: %v", err)
	}

	cfg := &config.Config{
		Port:           "0",
		SessionSecret:  "test-session-secret",
		Domain:         "https://verify.example.com",
		QRDir:          filepath.Join(dir, "qr"),
		PDFDir:         filepath.Join(dir, "pdf"),
		JPEGDir:        filepath.Join(dir, "jpeg"),
		ScanValidation: scanValidation,
	}

	router, err := NewRouter(cfg, db, qr, coll)
	if err != nil {
		t.Fatalf("Failed to build router: %v", err)
	}
	return router
}

func seedAdmin(t *testing.T, r *Router) {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	cred := models.Credential{Username: testUsername, PasswordHash: hash, AdminCode: testCode}
	if err := r.db.Create(&cred).Error; err != nil {
		t.Fatalf("Failed to seed credential: %v", err)
	}
}

func seedGTIN(t *testing.T, r *Router, gtin, name, productType string) {
	t.Helper()
	reg := models.GTINRegistration{GTIN: gtin, ProductName: name, ProductType: productType}
	if err := r.db.Create(&reg).Error; err != nil {
		t.Fatalf("Failed to seed gtin %s: %v", gtin, err)
	}
}

func seedBatch(t *testing.T, r *Router, batch, gtin string) {
	t.Helper()
	product := models.ProductBatch{
		Batch:   batch,
		GTIN:    gtin,
		MfgDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := r.db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed batch %s: %v", batch, err)
	}
}

// newClient returns a cookie-carrying client for the test server.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// noRedirectClient stops at the first response so redirects can be asserted.
func noRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	c := newClient(t)
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}

// loginClient authenticates the seeded admin and returns the session client.
func loginClient(t *testing.T, ts *httptest.Server) *http.Client {
	t.Helper()
	client := newClient(t)
	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"username": {testUsername},
		"password": {testPassword},
	})
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login did not succeed: status %d", resp.StatusCode)
	}
	return client
}
