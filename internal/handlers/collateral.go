package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/collateral"
	"github.com/veritrace/batchtrack/internal/models"
)

const maxUploadSize = 20 << 20 // 20 MiB

type displayView struct {
	Files    []collateral.Entry
	PDisplay string
}

// display lists the uploaded collateral inventory.
func (r *Router) display(w http.ResponseWriter, req *http.Request) {
	entries, err := r.collateral.List()
	if err != nil {
		logrus.WithError(err).Error("failed to list collateral")
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	query := req.URL.Query().Get("pdisplay")
	if query != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.ProductType), strings.ToLower(query)) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	r.render(w, "display.html", displayView{Files: entries, PDisplay: query})
}

// updateDisplay accepts one leaflet PDF and one JPEG per submission,
// named by product type. The upload is backed out when the type is not
// a registered GTIN's product type.
func (r *Router) updateDisplay(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid upload.", http.StatusBadRequest)
		return
	}

	productType := strings.TrimSpace(req.FormValue("product_type"))
	if productType == "" {
		http.Error(w, "Missing product type.", http.StatusBadRequest)
		return
	}

	var written []string

	if file, header, err := req.FormFile("leaflet"); err == nil {
		defer file.Close()
		if header.Header.Get("Content-Type") != "application/pdf" {
			http.Error(w, "Only PDF and JPEG files are allowed", http.StatusBadRequest)
			return
		}
		path, err := r.collateral.SavePDF(productType, file)
		if err != nil {
			logrus.WithError(err).Error("failed to store leaflet")
			http.Error(w, "Error processing your request", http.StatusInternalServerError)
			return
		}
		written = append(written, path)
	}

	if file, header, err := req.FormFile("image"); err == nil {
		defer file.Close()
		if header.Header.Get("Content-Type") != "image/jpeg" {
			r.collateral.Remove(written...)
			http.Error(w, "Only PDF and JPEG files are allowed", http.StatusBadRequest)
			return
		}
		path, err := r.collateral.SaveJPEG(productType, file)
		if err != nil {
			logrus.WithError(err).Error("failed to store image")
			r.collateral.Remove(written...)
			http.Error(w, "Error processing your request", http.StatusInternalServerError)
			return
		}
		written = append(written, path)
	}

	var count int64
	if err := r.db.Model(&models.GTINRegistration{}).
		Where("product_type = ?", productType).Count(&count).Error; err != nil {
		logrus.WithError(err).Error("failed to check product type")
		r.collateral.Remove(written...)
		http.Error(w, "Error processing your request", http.StatusInternalServerError)
		return
	}
	if count == 0 {
		r.collateral.Remove(written...)
		r.renderError(w, http.StatusOK, "Invalid Product", "Invalid Product Name")
		return
	}

	alertRedirect(w, http.StatusOK, "Files Updated successfully.", "/dashboard")
}

// deleteProductFile removes the stored collateral for a product type.
func (r *Router) deleteProductFile(w http.ResponseWriter, req *http.Request) {
	productType := req.URL.Query().Get("productType")
	if productType == "" {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid product type format",
		})
		return
	}

	deleted, err := r.collateral.Delete(productType)
	if errors.Is(err, collateral.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "No files found to delete",
		})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to delete collateral")
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "File deletion failed",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"deleted":     deleted,
		"productType": productType,
	})
}

// downloadProductPDF streams a stored leaflet.
func (r *Router) downloadProductPDF(w http.ResponseWriter, req *http.Request) {
	filename := filepath.Base(mux.Vars(req)["filename"])
	productType := strings.TrimSuffix(filename, ".pdf")
	path := r.collateral.PDFPath(productType)

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "PDF not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	http.ServeFile(w, req, path)
}
