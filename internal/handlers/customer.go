package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/models"
	"github.com/veritrace/batchtrack/internal/services/export"
)

type customerDatabaseView struct {
	Customers     []models.CustomerScan
	QueryBatch    string
	QueryLocation string
}

// customerDatabase lists scans with optional filters on batch and location.
func (r *Router) customerDatabase(w http.ResponseWriter, req *http.Request) {
	queryBatch := strings.ToLower(req.URL.Query().Get("batch"))
	queryLocation := strings.ToLower(req.URL.Query().Get("location"))

	q := r.db.Model(&models.CustomerScan{}).Order("customer_id")
	if queryBatch != "" {
		q = q.Where("LOWER(batch) LIKE ?", "%"+queryBatch+"%")
	}
	if queryLocation != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+queryLocation+"%")
	}

	var customers []models.CustomerScan
	if err := q.Find(&customers).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch customers")
		http.Error(w, "Error fetching customer", http.StatusInternalServerError)
		return
	}

	r.render(w, "customer_database.html", customerDatabaseView{
		Customers:     customers,
		QueryBatch:    queryBatch,
		QueryLocation: queryLocation,
	})
}

// deleteAllCustomers wipes the scan log.
func (r *Router) deleteAllCustomers(w http.ResponseWriter, req *http.Request) {
	if err := r.db.Where("1 = 1").Delete(&models.CustomerScan{}).Error; err != nil {
		logrus.WithError(err).Error("failed to delete customers")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/customerdatabase")
		return
	}
	alertRedirect(w, http.StatusOK, "All Customer Information deleted Successfully", "/customerdatabase")
}

// downloadCustomersExcel streams the customer table as a styled workbook.
func (r *Router) downloadCustomersExcel(w http.ResponseWriter, req *http.Request) {
	var customers []models.CustomerScan
	if err := r.db.Order("customer_id").Find(&customers).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch customers")
		http.Error(w, "Error generating Excel file", http.StatusInternalServerError)
		return
	}

	workbook, err := export.CustomerWorkbook(customers)
	if err != nil {
		logrus.WithError(err).Error("failed to build workbook")
		http.Error(w, "Error generating Excel file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", export.Filename(time.Now())))

	if err := workbook.Write(w); err != nil {
		logrus.WithError(err).Error("failed to stream workbook")
	}
}
