package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/veritrace/batchtrack/internal/collateral"
	"github.com/veritrace/batchtrack/internal/config"
	"github.com/veritrace/batchtrack/internal/database"
	"github.com/veritrace/batchtrack/internal/middleware"
	"github.com/veritrace/batchtrack/internal/qrstore"
	"github.com/veritrace/batchtrack/web"
)

// Router wraps the mux router with the stores and views it serves
type Router struct {
	*mux.Router
	db         *database.DB
	cfg        *config.Config
	sessions   sessions.Store
	qr         *qrstore.Store
	collateral *collateral.Store
	templates  *template.Template
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(cfg *config.Config, db *database.DB, qr *qrstore.Store, coll *collateral.Store) (*Router, error) {
	tfs, err := web.Templates()
	if err != nil {
		return nil, err
	}
	templates, err := template.ParseFS(tfs, "*.html")
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}

	r := &Router{
		Router:     mux.NewRouter(),
		db:         db,
		cfg:        cfg,
		sessions:   store,
		qr:         qr,
		collateral: coll,
		templates:  templates,
	}

	auth := middleware.RequireAuth(store, db)

	// Public pages
	r.HandleFunc("/", r.home).Methods("GET")
	r.HandleFunc("/login", r.loginPage).Methods("GET")
	r.HandleFunc("/login", r.login).Methods("POST")
	r.HandleFunc("/logout", r.logout).Methods("GET")
	r.HandleFunc("/error", r.errorPage).Methods("GET")

	// Public verification surface
	r.HandleFunc("/v", r.verifyLanding).Methods("GET")
	r.HandleFunc("/v/", r.verifyLanding).Methods("GET")
	r.HandleFunc("/clientui", r.clientUI).Methods("GET")
	r.HandleFunc("/submitCustomer", r.submitCustomer).Methods("POST")

	// Password recovery (public by contract)
	r.HandleFunc("/forgot-password", r.forgotPasswordPage).Methods("GET")
	r.HandleFunc("/forgot-password/verify-code", r.forgotPasswordVerifyCode).Methods("POST")
	r.HandleFunc("/forgot-password/reset", r.forgotPasswordResetPage).Methods("GET")
	r.HandleFunc("/forgot-password/reset", r.forgotPasswordReset).Methods("POST")
	r.HandleFunc("/change-password", r.changePasswordPage).Methods("GET")
	r.HandleFunc("/change-password", r.changePassword).Methods("POST")

	// Admin form pages
	r.HandleFunc("/dashboard", auth(r.dashboard)).Methods("GET")
	r.HandleFunc("/adminpanel", auth(r.page("adminpanel.html"))).Methods("GET")
	r.HandleFunc("/gtinRegister", auth(r.page("gtin_register.html"))).Methods("GET")
	r.HandleFunc("/delete_batch", auth(r.page("delete_batch.html"))).Methods("GET")
	r.HandleFunc("/delete_gtin", auth(r.page("delete_gtin.html"))).Methods("GET")
	r.HandleFunc("/delete_batch_toDashboard", auth(r.page("delete_batch_to_dashboard.html"))).Methods("GET")
	r.HandleFunc("/displayUpdate", auth(r.page("display_update.html"))).Methods("GET")
	r.HandleFunc("/delete_file", auth(r.page("delete_file.html"))).Methods("GET")
	r.HandleFunc("/logoutSure", auth(r.page("logout.html"))).Methods("GET")

	// Registration workflow
	r.HandleFunc("/submit_gtin", auth(r.submitGTIN)).Methods("POST")
	r.HandleFunc("/submit_product", auth(r.submitProduct)).Methods("POST")
	r.HandleFunc("/delete_batch", auth(r.deleteBatch)).Methods("POST")
	r.HandleFunc("/delete_gtin", auth(r.deleteGTIN)).Methods("POST")

	// List views
	r.HandleFunc("/view_database", auth(r.viewDatabase)).Methods("GET")
	r.HandleFunc("/gtinDatabase", auth(r.gtinDatabase)).Methods("GET")
	r.HandleFunc("/customerdatabase", auth(r.customerDatabase)).Methods("GET")
	r.HandleFunc("/qrdatabase", auth(r.qrDatabase)).Methods("GET")
	r.HandleFunc("/display", auth(r.display)).Methods("GET")

	// Admin verification variants
	r.HandleFunc("/adminclientui", auth(r.adminClientUI)).Methods("GET")
	r.HandleFunc("/adminclientui_qr", auth(r.adminClientUIQR)).Methods("GET")

	// QR lifecycle
	r.HandleFunc("/generateQR", auth(r.generateQR)).Methods("GET")
	r.HandleFunc("/generateQR_qr", auth(r.generateQRFromQRDatabase)).Methods("GET")
	r.HandleFunc("/deleteQR", auth(r.deleteQR)).Methods("GET")
	r.HandleFunc("/deleteQR_qr", auth(r.deleteQRFromQRDatabase)).Methods("GET")
	r.HandleFunc("/downloadQR", auth(r.downloadQR)).Methods("GET")
	r.HandleFunc("/deleteAllQRCodes", auth(r.deleteAllQRCodes)).Methods("GET")
	r.HandleFunc("/downloadLabels", auth(r.downloadLabels)).Methods("GET")

	// Customers
	r.HandleFunc("/deleteAllCustomers", auth(r.deleteAllCustomers)).Methods("GET")
	r.HandleFunc("/downloadCustomersExcel", auth(r.downloadCustomersExcel)).Methods("GET")

	// Collateral
	r.HandleFunc("/update_display", auth(r.updateDisplay)).Methods("POST")
	r.HandleFunc("/deleteProductFile", r.deleteProductFile).Methods("DELETE")
	r.HandleFunc("/product_pdf/{filename}", r.downloadProductPDF).Methods("GET")

	// Static files
	r.PathPrefix("/qrImages/").Handler(
		http.StripPrefix("/qrImages/", http.FileServer(http.Dir(cfg.QRDir))))
	r.PathPrefix("/product_jpeg/").Handler(
		http.StripPrefix("/product_jpeg/", http.FileServer(http.Dir(cfg.JPEGDir))))

	return r, nil
}

// page returns a handler rendering a static form page
func (r *Router) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.render(w, name, nil)
	}
}

func (r *Router) home(w http.ResponseWriter, req *http.Request) {
	r.render(w, "home.html", nil)
}

func (r *Router) loginPage(w http.ResponseWriter, req *http.Request) {
	r.render(w, "login.html", nil)
}

func (r *Router) errorPage(w http.ResponseWriter, req *http.Request) {
	r.render(w, "error.html", errorView{Title: "Error", Message: "Something went wrong."})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
