package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/veritrace/batchtrack/internal/middleware"
	"github.com/veritrace/batchtrack/internal/models"
	"github.com/veritrace/batchtrack/internal/utils"
)

const resetTokenKey = "reset_token"

// login handles the username/password form. A missing user and a wrong
// password are indistinguishable: both land back on the home page.
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	username := req.PostFormValue("username")
	password := req.PostFormValue("password")

	var cred models.Credential
	if err := r.db.Where("username = ?", username).First(&cred).Error; err != nil {
		http.Redirect(w, req, "/", http.StatusFound)
		return
	}

	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		http.Redirect(w, req, "/", http.StatusFound)
		return
	}

	session, _ := r.sessions.Get(req, middleware.SessionName)
	session.Values["username"] = cred.Username
	if err := session.Save(req, w); err != nil {
		logrus.WithError(err).Error("failed to save session")
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, req, "/dashboard", http.StatusFound)
}

func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	session, _ := r.sessions.Get(req, middleware.SessionName)
	delete(session.Values, "username")
	session.Options.MaxAge = -1
	_ = session.Save(req, w)
	http.Redirect(w, req, "/", http.StatusFound)
}

// forgotPasswordPage shows the admin code verification form
func (r *Router) forgotPasswordPage(w http.ResponseWriter, req *http.Request) {
	r.render(w, "forgot_password_step1.html", nil)
}

// forgotPasswordVerifyCode checks the recovery code and stashes a
// short-lived reset token in the session.
func (r *Router) forgotPasswordVerifyCode(w http.ResponseWriter, req *http.Request) {
	adminCode := req.PostFormValue("adminCode")

	var cred models.Credential
	if err := r.db.Where("admin_code = ?", adminCode).First(&cred).Error; err != nil {
		alertRedirect(w, http.StatusOK, "Invalid Admin Code!", "/forgot-password")
		return
	}

	token, err := utils.GenerateResetToken(adminCode, r.cfg.SessionSecret, utils.ResetTokenTTL)
	if err != nil {
		logrus.WithError(err).Error("failed to generate reset token")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/forgot-password")
		return
	}

	session, _ := r.sessions.Get(req, middleware.SessionName)
	session.Values[resetTokenKey] = token
	if err := session.Save(req, w); err != nil {
		logrus.WithError(err).Error("failed to save session")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/forgot-password")
		return
	}

	http.Redirect(w, req, "/forgot-password/reset", http.StatusFound)
}

// forgotPasswordResetPage shows the reset form only while the token holds
func (r *Router) forgotPasswordResetPage(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.resetCode(req); !ok {
		http.Redirect(w, req, "/forgot-password", http.StatusFound)
		return
	}
	r.render(w, "forgot_password_step2.html", nil)
}

// forgotPasswordReset updates the password for the credential owning the
// verified admin code, then clears the token.
func (r *Router) forgotPasswordReset(w http.ResponseWriter, req *http.Request) {
	adminCode, ok := r.resetCode(req)
	if !ok {
		http.Redirect(w, req, "/forgot-password", http.StatusFound)
		return
	}

	newPassword := req.PostFormValue("newPassword")
	confirmPassword := req.PostFormValue("confirmPassword")
	if newPassword == "" || newPassword != confirmPassword {
		alertRedirect(w, http.StatusOK, "Passwords do not match!", "/forgot-password/reset")
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/forgot-password/reset")
		return
	}

	if err := r.db.Model(&models.Credential{}).
		Where("admin_code = ?", adminCode).
		Update("password_hash", hash).Error; err != nil {
		logrus.WithError(err).Error("failed to update password")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/forgot-password/reset")
		return
	}

	session, _ := r.sessions.Get(req, middleware.SessionName)
	delete(session.Values, resetTokenKey)
	_ = session.Save(req, w)

	alertRedirect(w, http.StatusOK, "Password reset successfully!", "/login")
}

// resetCode extracts and validates the reset token from the session.
func (r *Router) resetCode(req *http.Request) (string, bool) {
	session, err := r.sessions.Get(req, middleware.SessionName)
	if err != nil {
		return "", false
	}
	token, ok := session.Values[resetTokenKey].(string)
	if !ok || token == "" {
		return "", false
	}
	code, err := utils.ValidateResetToken(token, r.cfg.SessionSecret)
	if err != nil {
		return "", false
	}
	return code, true
}

func (r *Router) changePasswordPage(w http.ResponseWriter, req *http.Request) {
	r.render(w, "change_password.html", nil)
}

// changePassword requires the current username and password to match
// before accepting a new password.
func (r *Router) changePassword(w http.ResponseWriter, req *http.Request) {
	username := req.PostFormValue("username")
	oldPassword := req.PostFormValue("oldPassword")
	newPassword := req.PostFormValue("newPassword")
	confirmPassword := req.PostFormValue("confirmPassword")

	if newPassword == "" || newPassword != confirmPassword {
		alertRedirect(w, http.StatusOK, "New passwords do not match!", "/change-password")
		return
	}

	var cred models.Credential
	if err := r.db.Where("username = ?", username).First(&cred).Error; err != nil {
		alertRedirect(w, http.StatusOK, "Username not found!", "/change-password")
		return
	}

	if !utils.CheckPasswordHash(oldPassword, cred.PasswordHash) {
		alertRedirect(w, http.StatusOK, "Old password is incorrect!", "/change-password")
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/change-password")
		return
	}

	if err := r.db.Model(&cred).Update("password_hash", hash).Error; err != nil {
		logrus.WithError(err).Error("failed to update password")
		alertRedirect(w, http.StatusOK, "Something went wrong!", "/change-password")
		return
	}

	alertRedirect(w, http.StatusOK, "Password changed successfully!", "/login")
}
