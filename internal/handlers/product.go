package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/models"
	"github.com/veritrace/batchtrack/internal/qrstore"
	"gorm.io/gorm"
)

// productRow is a products row joined with its GTIN registration.
type productRow struct {
	ID          uint
	Batch       string
	GTIN        string `gorm:"column:gtin"`
	MfgDate     time.Time
	ExpDate     time.Time
	ProductName string
	ProductType string
}

// productView is a productRow with display-formatted dates.
type productView struct {
	ID          uint
	Batch       string
	GTIN        string
	MfgDate     string
	ExpDate     string
	ProductName string
	ProductType string
}

func (row productRow) view() productView {
	return productView{
		ID:          row.ID,
		Batch:       row.Batch,
		GTIN:        row.GTIN,
		MfgDate:     formatDate(row.MfgDate),
		ExpDate:     formatDate(row.ExpDate),
		ProductName: row.ProductName,
		ProductType: row.ProductType,
	}
}

func (r *Router) joinedProducts() *gorm.DB {
	return r.db.Table("products p").
		Select("p.id, p.batch, p.gtin, p.mfg_date, p.exp_date, g.product_name, g.product_type").
		Joins("LEFT JOIN gtin_registration g ON p.gtin = g.gtin")
}

// lookupBatch resolves a batch to its joined product metadata.
func (r *Router) lookupBatch(batch string) (productView, error) {
	var row productRow
	err := r.joinedProducts().Where("p.batch = ?", batch).Take(&row).Error
	if err != nil {
		return productView{}, err
	}
	return row.view(), nil
}

// submitProduct registers a batch against an existing GTIN and issues
// its QR image. QR failure is logged, not surfaced.
func (r *Router) submitProduct(w http.ResponseWriter, req *http.Request) {
	gtin := strings.TrimSpace(req.PostFormValue("gtin"))
	batch := strings.TrimSpace(req.PostFormValue("batchNumber"))

	mfgDate, err := parseDate(req.PostFormValue("mfgDate"))
	if err != nil {
		r.renderError(w, http.StatusBadRequest, "Invalid Date", err.Error())
		return
	}
	expDate, err := parseDate(req.PostFormValue("expDate"))
	if err != nil {
		r.renderError(w, http.StatusBadRequest, "Invalid Date", err.Error())
		return
	}

	var gtinCount int64
	if err := r.db.Model(&models.GTINRegistration{}).Where("gtin = ?", gtin).Count(&gtinCount).Error; err != nil {
		logrus.WithError(err).Error("failed to check gtin")
		http.Error(w, "Server Error: Could not submit product.", http.StatusInternalServerError)
		return
	}
	if gtinCount == 0 {
		r.renderError(w, http.StatusOK, "Invalid GTIN", "GTIN is Not Registered, Enter a Valid GTIN")
		return
	}

	var batchCount int64
	if err := r.db.Model(&models.ProductBatch{}).Where("batch = ?", batch).Count(&batchCount).Error; err != nil {
		logrus.WithError(err).Error("failed to check batch")
		http.Error(w, "Server Error: Could not submit product.", http.StatusInternalServerError)
		return
	}
	if batchCount > 0 {
		r.renderError(w, http.StatusOK, "Duplicate Batch", "Batch Already Exist.")
		return
	}

	product := models.ProductBatch{
		Batch:   batch,
		GTIN:    gtin,
		MfgDate: mfgDate,
		ExpDate: expDate,
	}
	if err := r.db.Create(&product).Error; err != nil {
		// A racing insert lands on the unique index and reports the same way
		logrus.WithError(err).WithField("batch", batch).Error("failed to create product batch")
		r.renderError(w, http.StatusOK, "Duplicate Batch", "Batch Already Exist.")
		return
	}

	if err := r.qr.Generate(batch, r.verifyURL(batch)); err != nil {
		logrus.WithError(err).WithField("batch", batch).Error("failed to generate qr image")
	}

	alertRedirect(w, http.StatusOK, "New Batch Submitted successfully.", "/adminpanel")
}

// deleteBatch removes the product row, then the QR image, reporting the
// three outcomes separately.
func (r *Router) deleteBatch(w http.ResponseWriter, req *http.Request) {
	batch := strings.TrimSpace(req.PostFormValue("batchNumber"))

	var count int64
	if err := r.db.Model(&models.ProductBatch{}).Where("batch = ?", batch).Count(&count).Error; err != nil {
		logrus.WithError(err).Error("failed to check batch")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/delete_batch")
		return
	}
	if count == 0 {
		alertRedirect(w, http.StatusOK, "No such batch found.", "/delete_batch")
		return
	}

	if err := r.db.Where("batch = ?", batch).Delete(&models.ProductBatch{}).Error; err != nil {
		logrus.WithError(err).Error("failed to delete batch")
		alertRedirect(w, http.StatusOK, "Something went wrong.", "/delete_batch")
		return
	}

	switch err := r.qr.Delete(batch); {
	case errors.Is(err, qrstore.ErrNotFound):
		alertRedirect(w, http.StatusNotFound,
			"Batch Data Deleted but QR image not found in Server.", "/view_database")
	case err != nil:
		logrus.WithError(err).WithField("batch", batch).Error("failed to delete qr image")
		alertRedirect(w, http.StatusInternalServerError, "Failed to delete QR image.", "/view_database")
	default:
		alertRedirect(w, http.StatusOK, "QR image and Batch Data deleted successfully.", "/view_database")
	}
}

type viewDatabaseView struct {
	Products   []productView
	QueryBatch string
}

// viewDatabase lists product batches joined with their registrations,
// optionally filtered on batch.
func (r *Router) viewDatabase(w http.ResponseWriter, req *http.Request) {
	query := strings.ToLower(req.URL.Query().Get("batch"))

	q := r.joinedProducts().Order("p.id")
	if query != "" {
		q = q.Where("LOWER(p.batch) LIKE ?", "%"+query+"%")
	}

	var rows []productRow
	if err := q.Find(&rows).Error; err != nil {
		logrus.WithError(err).Error("failed to fetch products")
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	views := make([]productView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}

	r.render(w, "view_database.html", viewDatabaseView{Products: views, QueryBatch: query})
}
