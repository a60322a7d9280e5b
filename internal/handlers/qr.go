package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/qrstore"
	"github.com/veritrace/batchtrack/internal/services/printer"
)

// generateQR regenerates the QR image and returns to the product view.
func (r *Router) generateQR(w http.ResponseWriter, req *http.Request) {
	r.regenerateQR(w, req, "/adminclientui?b=")
}

// generateQRFromQRDatabase is the same operation reached from the QR
// inventory view.
func (r *Router) generateQRFromQRDatabase(w http.ResponseWriter, req *http.Request) {
	r.regenerateQR(w, req, "/adminclientui_qr?b=")
}

func (r *Router) regenerateQR(w http.ResponseWriter, req *http.Request, target string) {
	batch := req.URL.Query().Get("batch")
	if batch == "" {
		http.Error(w, "Missing batch number in query.", http.StatusBadRequest)
		return
	}

	if err := r.qr.Generate(batch, r.verifyURL(batch)); err != nil {
		logrus.WithError(err).WithField("batch", batch).Error("failed to generate qr image")
		http.Error(w, "Error generating QR code.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, req, target+batch, http.StatusFound)
}

// deleteQR removes a batch's image, reporting absence and failure apart.
func (r *Router) deleteQR(w http.ResponseWriter, req *http.Request) {
	r.removeQR(w, req, "/view_database")
}

// deleteQRFromQRDatabase is the variant returning to the QR inventory.
func (r *Router) deleteQRFromQRDatabase(w http.ResponseWriter, req *http.Request) {
	r.removeQR(w, req, "/qrdatabase")
}

func (r *Router) removeQR(w http.ResponseWriter, req *http.Request, target string) {
	batch := req.URL.Query().Get("batch")
	if batch == "" {
		http.Error(w, "Missing batch number in query.", http.StatusBadRequest)
		return
	}

	switch err := r.qr.Delete(batch); {
	case errors.Is(err, qrstore.ErrNotFound):
		alertRedirect(w, http.StatusNotFound, "QR image not found.", target)
	case err != nil:
		logrus.WithError(err).WithField("batch", batch).Error("failed to delete qr image")
		alertRedirect(w, http.StatusInternalServerError, "Failed to delete QR image.", target)
	default:
		alertRedirect(w, http.StatusOK, "QR image deleted successfully.", target)
	}
}

// downloadQR streams the image as an attachment named after the batch.
func (r *Router) downloadQR(w http.ResponseWriter, req *http.Request) {
	batch := req.URL.Query().Get("batch")
	if batch == "" || !r.qr.Exists(batch) {
		http.Error(w, "QR code not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_qr.png", batch))
	http.ServeFile(w, req, r.qr.Path(batch))
}

// deleteAllQRCodes wipes the QR inventory.
func (r *Router) deleteAllQRCodes(w http.ResponseWriter, req *http.Request) {
	if err := r.qr.DeleteAll(); err != nil {
		logrus.WithError(err).Error("failed to delete qr images")
		http.Error(w, "Error deleting files", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, req, "/qrdatabase", http.StatusFound)
}

// downloadLabels streams a printable A4 sheet of QR labels for a batch.
func (r *Router) downloadLabels(w http.ResponseWriter, req *http.Request) {
	batch := req.URL.Query().Get("batch")
	if batch == "" {
		http.Error(w, "Missing batch number in query.", http.StatusBadRequest)
		return
	}

	count := 32
	if c := req.URL.Query().Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 || n > 1000 {
			http.Error(w, "Invalid label count.", http.StatusBadRequest)
			return
		}
		count = n
	}

	pdf, err := printer.GenerateLabelsPDF(printer.DefaultLabelConfig(batch, count), r.verifyURL(batch))
	if err != nil {
		logrus.WithError(err).WithField("batch", batch).Error("failed to generate label sheet")
		http.Error(w, "Error generating label sheet.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_labels.pdf", batch))
	w.Write(pdf)
}

type qrRecord struct {
	ID     int
	Batch  string
	QRPath string
}

type qrDatabaseView struct {
	QRData     []qrRecord
	QueryBatch string
}

// qrDatabase lists the QR image inventory from the filesystem.
func (r *Router) qrDatabase(w http.ResponseWriter, req *http.Request) {
	batches, err := r.qr.List()
	if err != nil {
		logrus.WithError(err).Error("failed to read qr folder")
		http.Error(w, "Error reading QR folder", http.StatusInternalServerError)
		return
	}

	query := strings.ToLower(req.URL.Query().Get("batch"))

	var records []qrRecord
	for _, batch := range batches {
		if query != "" && !strings.Contains(strings.ToLower(batch), query) {
			continue
		}
		records = append(records, qrRecord{
			ID:     len(records) + 1,
			Batch:  batch,
			QRPath: "/qrImages/" + batch + "_qr.png",
		})
	}

	r.render(w, "qr_database.html", qrDatabaseView{QRData: records, QueryBatch: query})
}
