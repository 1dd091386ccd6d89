package controllers

import (
	"net/http"
	"time"

	"go-retrofit/middleware"
	"go-retrofit/models"
	"go-retrofit/utils"
)

// AdminController gates the admin pages behind one shared password
type AdminController struct {
	PasswordHash string
	SecureCookie bool
	now          func() time.Time
}

// NewAdminController creates a new AdminController
func NewAdminController(passwordHash string, secureCookie bool) *AdminController {
	return &AdminController{PasswordHash: passwordHash, SecureCookie: secureCookie, now: time.Now}
}

func (ac *AdminController) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// Login exchanges the admin password for a session token
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Password == "" || !utils.CheckPassword(ac.PasswordHash, req.Password) {
		middleware.LoggerFrom(r.Context()).Warn("admin login failed")
		writeMessage(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, expiresAt, err := utils.GenerateJWT(utils.AdminRole, ac.now())
	if err != nil {
		middleware.LoggerFrom(r.Context()).WithError(err).Error("error generating token")
		writeMessage(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	ac.setCookie(w, token, int(utils.TokenTTL.Seconds()))
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout drops the admin cookie
func (ac *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.setCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Session reports whether the caller holds a valid admin token
func (ac *AdminController) Session(w http.ResponseWriter, r *http.Request) {
	tokenStr := middleware.TokenFromRequest(r)
	if tokenStr == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil || claims.Role != utils.AdminRole {
		writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"expiresAt":     time.Unix(claims.ExpiresAt, 0).UTC(),
	})
}
