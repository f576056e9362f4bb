package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"eventhorizon/internal/middleware"
	"eventhorizon/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signupHandler(svc))
		ar.Post("/signin", signinHandler(svc))
	})

	r.Get("/me", meHandler(svc))
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse representa una cuenta devuelta por la API. El hash no sale nunca.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type signinResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// signupHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta con rol user. El email debe ser único; el password mínimo 8 caracteres.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Datos de la cuenta"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 409 {string} string "email already registered"
// @Router /auth/signup [post]
func signupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Signup(r.Context(), SignupInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// signinHandler godoc
// @Summary Iniciar sesión
// @Description Valida credenciales y devuelve un JWT junto con la cuenta.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signinRequest true "Credenciales"
// @Success 200 {object} signinResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid credentials"
// @Router /auth/signin [post]
func signinHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, token, err := svc.Signin(r.Context(), req.Email, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, signinResponse{
			Token: token,
			User:  toUserResponse(u),
		})
	}
}

// meHandler godoc
// @Summary Cuenta del usuario autenticado
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} userResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "user not found"
// @Router /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo para
// no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
