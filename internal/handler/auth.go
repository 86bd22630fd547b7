package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/service"
	"github.com/msomdec/customer-desk/internal/view"
)

const authCookie = "auth_token"

// AuthHandler handles operator sign-in and sign-out.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the login form, or skips it for a signed-in operator.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateRequest(r, h.auth); err == nil {
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}
	view.LoginPage("", "").Render(r.Context(), w)
}

// HandleLoginForm processes the login form.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	token, err := h.auth.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		status, msg := loginErrorStatus(err)
		w.WriteHeader(status)
		view.LoginPage(email, msg).Render(r.Context(), w)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// HandleLogoutForm clears the auth cookie and returns to the login page.
func (h *AuthHandler) HandleLogoutForm(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := loginErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	h.setAuthCookie(w, token)

	userID, _ := h.auth.ValidateToken(token)
	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		slog.Error("get user after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleRegister lets a signed-in operator create another operator account.
// POST /api/auth/register
// Request:  {"email":"...","displayName":"...","password":"...","confirmPassword":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		DisplayName     string `json:"displayName"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with that email already exists.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated operator.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(UserFromContext(r.Context())),
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.SessionTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func loginErrorStatus(err error) (int, string) {
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized, "Invalid email or password."
	}
	slog.Error("login user", "error", err)
	return http.StatusInternalServerError, "An unexpected error occurred. Please try again."
}
