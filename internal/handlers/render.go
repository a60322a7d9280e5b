package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// dateLayout is the display form for manufacture/expiry dates.
const dateLayout = "02/01/2006"

type errorView struct {
	Title   string
	Message string
}

func (r *Router) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		logrus.WithError(err).WithField("template", name).Error("failed to render template")
		http.Error(w, "Server error.", http.StatusInternalServerError)
	}
}

func (r *Router) renderError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, "error.html", errorView{Title: title, Message: message}); err != nil {
		logrus.WithError(err).Error("failed to render error view")
	}
}

// alertRedirect answers with the client-side alert-then-redirect pattern
// the admin views rely on.
func alertRedirect(w http.ResponseWriter, status int, message, target string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	message = strings.ReplaceAll(message, `"`, `\"`)
	fmt.Fprintf(w, `<script>alert("%s"); window.location.href="%s";</script>`, message, target)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate converts the DD/MM/YYYY form input to a date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY: %w", s, err)
	}
	return t, nil
}

// verifyURL is the address a batch QR code encodes.
func (r *Router) verifyURL(batch string) string {
	return fmt.Sprintf("%s/v/?b=%s", r.cfg.Domain, batch)
}
