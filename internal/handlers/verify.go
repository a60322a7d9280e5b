package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/models"
	"gorm.io/gorm"
)

// verifyLanding is the public page a scanned QR code lands on.
func (r *Router) verifyLanding(w http.ResponseWriter, req *http.Request) {
	batch := req.URL.Query().Get("b")
	r.render(w, "verify.html", struct{ Batch string }{Batch: batch})
}

// clientUI is the public verification page for a batch.
func (r *Router) clientUI(w http.ResponseWriter, req *http.Request) {
	batch := req.URL.Query().Get("b")
	if batch == "" {
		http.Error(w, "Missing batch parameter.", http.StatusBadRequest)
		return
	}

	product, err := r.lookupBatch(batch)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Product not found.", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to look up batch")
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	r.render(w, "clientui.html", struct{ Product productView }{Product: product})
}

type adminClientView struct {
	Product productView
	Domain  string
}

// adminClientUI renders the same data as clientUI with admin controls.
func (r *Router) adminClientUI(w http.ResponseWriter, req *http.Request) {
	r.adminClient(w, req, "admin_clientui.html")
}

// adminClientUIQR is the variant reached from the QR database view.
func (r *Router) adminClientUIQR(w http.ResponseWriter, req *http.Request) {
	r.adminClient(w, req, "admin_clientui_qr.html")
}

func (r *Router) adminClient(w http.ResponseWriter, req *http.Request, tmpl string) {
	batch := req.URL.Query().Get("b")
	if batch == "" {
		http.Error(w, "Missing batch parameter.", http.StatusBadRequest)
		return
	}

	product, err := r.lookupBatch(batch)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Product not found.", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to look up batch")
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	r.render(w, tmpl, adminClientView{Product: product, Domain: r.cfg.Domain})
}

// submitCustomer appends a scan record. The batch is free text unless
// scan validation is enabled.
func (r *Router) submitCustomer(w http.ResponseWriter, req *http.Request) {
	name := req.PostFormValue("name")
	phone := req.PostFormValue("phone")
	location := req.PostFormValue("location")
	batch := req.PostFormValue("batch")

	if r.cfg.ScanValidation {
		var count int64
		if err := r.db.Model(&models.ProductBatch{}).Where("batch = ?", batch).Count(&count).Error; err != nil {
			logrus.WithError(err).Error("failed to validate scan batch")
			http.Error(w, "Server error.", http.StatusInternalServerError)
			return
		}
		if count == 0 {
			r.renderError(w, http.StatusNotFound, "Unknown Batch", "This batch is not registered.")
			return
		}
	}

	meta, _ := json.Marshal(map[string]string{
		"userAgent": req.UserAgent(),
		"referer":   req.Referer(),
	})

	scan := models.CustomerScan{
		Name:     name,
		Phone:    phone,
		Location: location,
		Batch:    batch,
		Meta:     meta,
	}
	if err := r.db.Create(&scan).Error; err != nil {
		logrus.WithError(err).Error("failed to record customer scan")
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, req, "/clientui?b="+batch, http.StatusFound)
}
