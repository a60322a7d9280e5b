package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/collateral"
	"github.com/veritrace/batchtrack/internal/config"
	"github.com/veritrace/batchtrack/internal/database"
	"github.com/veritrace/batchtrack/internal/handlers"
	"github.com/veritrace/batchtrack/internal/models"
	"github.com/veritrace/batchtrack/internal/qrstore"
	"github.com/veritrace/batchtrack/internal/utils"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	// Note: db.Close() is called manually in the shutdown handler below

	// 3. Synchronize schema
	if err := db.AutoMigrate(
		&models.Credential{},
		&models.GTINRegistration{},
		&models.ProductBatch{},
		&models.CustomerScan{},
	); err != nil {
		logrus.WithError(err).Fatal("failed to migrate schema")
	}

	// 4. Seed the admin credential on first start
	if err := seedCredential(db, cfg.Admin); err != nil {
		logrus.WithError(err).Fatal("failed to seed admin credential")
	}

	// 5. Filesystem stores
	qr, err := qrstore.New(cfg.QRDir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open qr store")
	}
	coll, err := collateral.New(cfg.PDFDir, cfg.JPEGDir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open collateral store")
	}

	// 6. HTTP router
	router, err := handlers.NewRouter(cfg, db, qr, coll)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build router")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	sig := <-shutdown
	logrus.WithField("signal", sig.String()).Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("http server shutdown error")
	}

	// Closing the database also stops embedded PostgreSQL
	if err := db.Close(); err != nil {
		logrus.WithError(err).Error("database close error")
	}

	logrus.Info("shutdown complete")
}

// seedCredential creates the configured admin account when the
// credentials table is empty.
func seedCredential(db *database.DB, admin config.AdminConfig) error {
	var count int64
	if err := db.Model(&models.Credential{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if admin.Username == "" || admin.Password == "" || admin.Code == "" {
		logrus.Warn("credentials table is empty and no ADMIN_USERNAME/ADMIN_PASSWORD/ADMIN_CODE configured")
		return nil
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	cred := models.Credential{
		Username:     admin.Username,
		PasswordHash: hash,
		AdminCode:    admin.Code,
	}
	if err := db.Create(&cred).Error; err != nil {
		return err
	}

	logrus.WithField("username", admin.Username).Info("seeded admin credential")
	return nil
}
