package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/models"
)

// submitGTIN registers a new GTIN. Duplicates get a distinct error view.
func (r *Router) submitGTIN(w http.ResponseWriter, req *http.Request) {
	gtin := strings.TrimSpace(req.PostFormValue("gtin"))
	productName := strings.TrimSpace(req.PostFormValue("product_name"))
	productType := strings.TrimSpace(req.PostFormValue("product_type"))

	if gtin == "" || productName == "" || productType == "" {
		r.renderError(w, http.StatusBadRequest, "Invalid Input", "GTIN, product name and product type are required.")
		return
	}

	var count int64
	if err := r.db.Model(&models.GTINRegistration{}).Where("gtin = ?", gtin).Count(&count).Error; err != nil {
		logrus.WithError(err).Error("failed to check gtin")
		http.Error(w, "Error processing your request GTIN", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		r.renderError(w, http.StatusOK, "Duplicate GTIN", "GTIN Already Exist.")
		return
	}

	reg := models.GTINRegistration{GTIN: gtin, ProductName: productName, ProductType: productType}
	if err := r.db.Create(&reg).Error; err != nil {
		// A racing insert lands on the unique index and reports the same way
		logrus.WithError(err).WithField("gtin", gtin).Error("failed to create gtin registration")
		r.renderError(w, http.StatusOK, "Duplicate GTIN", "GTIN Already Exist.")
		return
	}

	alertRedirect(w, http.StatusOK, "New GTIN Registered successfully.", "/gtinRegister")
}

// deleteGTIN removes a registration. GTINs with dependent batches are
// refused rather than cascading.
func (r *Router) deleteGTIN(w http.ResponseWriter, req *http.Request) {
	gtin := strings.TrimSpace(req.PostFormValue("gtin"))

	var count int64
	if err := r.db.Model(&models.GTINRegistration{}).Where("gtin = ?", gtin).Count(&count).Error; err != nil {
		logrus.WithError(err).Error("failed to check gtin")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/delete_gtin")
		return
	}
	if count == 0 {
		alertRedirect(w, http.StatusOK, "No such GTIN found.", "/delete_gtin")
		return
	}

	var batches int64
	if err := r.db.Model(&models.ProductBatch{}).Where("gtin = ?", gtin).Count(&batches).Error; err != nil {
		logrus.WithError(err).Error("failed to check dependent batches")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/delete_gtin")
		return
	}
	if batches > 0 {
		r.renderError(w, http.StatusOK, "GTIN In Use",
			"This GTIN still has registered batches. Delete its batches first.")
		return
	}

	if err := r.db.Where("gtin = ?", gtin).Delete(&models.GTINRegistration{}).Error; err != nil {
		logrus.WithError(err).Error("failed to delete gtin")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/delete_gtin")
		return
	}

	alertRedirect(w, http.StatusOK, "GTIN Deleted Successfully.", "/gtinDatabase")
}

type gtinDatabaseView struct {
	Registrations []models.GTINRegistration
	QueryGTIN     string
}

// gtinDatabase lists registrations with an optional case-insensitive
// substring filter on the GTIN.
func (r *Router) gtinDatabase(w http.ResponseWriter, req *http.Request) {
	query := strings.ToLower(req.URL.Query().Get("gtin"))

	q := r.db.Model(&models.GTINRegistration{}).Order("id")
	if query != "" {
		q = q.Where("LOWER(gtin) LIKE ?", "%"+query+"%")
	}

	var regs []models.GTINRegistration
	if err := q.Find(&regs).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch gtin registrations")
		http.Error(w, "Error fetching GTIN", http.StatusInternalServerError)
		return
	}

	r.render(w, "gtin_database.html", gtinDatabaseView{Registrations: regs, QueryGTIN: query})
}
