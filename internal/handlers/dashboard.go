package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/models"
)

type dashboardView struct {
	NumberOfCustomers int64
	TotalGTIN         int64
	TotalProduct      int64
}

// dashboard shows the aggregate counts
func (r *Router) dashboard(w http.ResponseWriter, req *http.Request) {
	var view dashboardView

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.CustomerScan{}, &view.NumberOfCustomers},
		{&models.GTINRegistration{}, &view.TotalGTIN},
		{&models.ProductBatch{}, &view.TotalProduct},
	}
	for _, c := range counts {
		if err := r.db.Model(c.model).Count(c.dst).Error; err != nil {
			logrus.WithError(err).Error("failed to count rows")
			http.Error(w, "Server error.", http.StatusInternalServerError)
			return
		}
	}

	r.render(w, "dashboard.html", view)
}
