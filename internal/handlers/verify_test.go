package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/veritrace/batchtrack/internal/models"
)

func get(router *Router, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func postForm(router *Router, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientUIRequiresBatch(t *testing.T) {
	router := newTestRouter(t, false)

	if w := get(router, "/clientui"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without batch, got %d", w.Code)
	}
}

func TestClientUIUnknownBatch(t *testing.T) {
	router := newTestRouter(t, false)

	w := get(router, "/clientui?b=NOPE")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown batch, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Product not found.") {
		t.Errorf("Expected not-found message, got: %s", w.Body.String())
	}
}

func TestClientUIShowsProduct(t *testing.T) {
	router := newTestRouter(t, false)
	seedGTIN(t, router, "0012345678905", "Widget", "widget-std")
	seedBatch(t, router, "B100", "0012345678905")

	w := get(router, "/clientui?b=B100")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Widget", "widget-std", "B100", "01/01/2025", "01/01/2027"} {
		if !strings.Contains(body, want) {
			t.Errorf("Verification page missing %q", want)
		}
	}
}

func TestVerifyLandingCarriesBatch(t *testing.T) {
	router := newTestRouter(t, false)

	w := get(router, "/v/?b=B100")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "B100") {
		t.Error("Landing page should carry the scanned batch")
	}
}

func TestSubmitCustomerPermissive(t *testing.T) {
	router := newTestRouter(t, false)

	// Validation off: unknown batches are still logged.
	w := postForm(router, "/submitCustomer", url.Values{
		"name":     {"Alice"},
		"phone":    {"123"},
		"location": {"Berlin"},
		"batch":    {"UNKNOWN"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/clientui?b=UNKNOWN" {
		t.Errorf("Expected redirect back to verification, got %s", loc)
	}

	var scan models.CustomerScan
	if err := router.db.First(&scan).Error; err != nil {
		t.Fatalf("Scan row missing: %v", err)
	}
	if scan.Name != "Alice" || scan.Batch != "UNKNOWN" {
		t.Errorf("Unexpected scan row: %+v", scan)
	}
}

func TestSubmitCustomerValidated(t *testing.T) {
	router := newTestRouter(t, true)
	seedGTIN(t, router, "0012345678905", "Widget", "widget-std")
	seedBatch(t, router, "B100", "0012345678905")

	w := postForm(router, "/submitCustomer", url.Values{
		"name":  {"Alice"},
		"batch": {"UNKNOWN"},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown batch under validation, got %d", w.Code)
	}
	var count int64
	router.db.Model(&models.CustomerScan{}).Count(&count)
	if count != 0 {
		t.Error("Rejected scan should not be logged")
	}

	w = postForm(router, "/submitCustomer", url.Values{
		"name":  {"Alice"},
		"batch": {"B100"},
	})
	if w.Code != http.StatusFound {
		t.Errorf("Expected 302 for a known batch, got %d", w.Code)
	}
	router.db.Model(&models.CustomerScan{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected one logged scan, got %d", count)
	}
}

func TestSubmitCustomerRecordsMeta(t *testing.T) {
	router := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/submitCustomer",
		strings.NewReader(url.Values{"name": {"Alice"}, "batch": {"B100"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent/1.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}

	var scan models.CustomerScan
	if err := router.db.First(&scan).Error; err != nil {
		t.Fatalf("Scan row missing: %v", err)
	}
	if !strings.Contains(string(scan.Meta), "test-agent/1.0") {
		t.Errorf("Expected user agent in meta, got %s", scan.Meta)
	}
}

// TestRegistrationToVerification walks the whole admin-to-customer path:
// register a GTIN, submit a batch against it, then read the public
// verification page a scanned code would open.
func TestRegistrationToVerification(t *testing.T) {
	router := newTestRouter(t, false)
	seedAdmin(t, router)
	ts := httptest.NewServer(router)
	defer ts.Close()

	client := loginClient(t, ts)

	resp, err := client.PostForm(ts.URL+"/submit_gtin", url.Values{
		"gtin":         {"0012345678905"},
		"product_name": {"Widget"},
		"product_type": {"widget-std"},
	})
	if err != nil {
		t.Fatalf("GTIN registration failed: %v", err)
	}
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/submit_product", url.Values{
		"gtin":        {"0012345678905"},
		"batchNumber": {"B100"},
		"mfgDate":     {"01/01/2025"},
		"expDate":     {"01/01/2027"},
	})
	if err != nil {
		t.Fatalf("Batch submission failed: %v", err)
	}
	resp.Body.Close()

	if !router.qr.Exists("B100") {
		t.Fatal("QR image should exist after batch submission")
	}

	// Anonymous customer path, no session.
	anon := newClient(t)
	resp, err = anon.Get(ts.URL + "/clientui?b=B100")
	if err != nil {
		t.Fatalf("Verification request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	for _, want := range []string{"Widget", "01/01/2025", "01/01/2027"} {
		if !strings.Contains(body, want) {
			t.Errorf("Verification page missing %q", want)
		}
	}
}
