package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"articleboard/internal/config"
	"articleboard/internal/logger"
	"articleboard/internal/models"
	"articleboard/internal/services"
	"articleboard/internal/utils"
	"articleboard/internal/utils/helpers"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Authorities  []string `json:"authorities"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Registration data"
// @Success 201 {string} string "user registered"
// @Failure 400 {string} string "validation error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user := &models.User{Email: req.Email}
	if err := h.authService.RegisterUser(r.Context(), user, req.Password); err != nil {
		logger.WithCtx(r.Context()).Error("registration failed", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	helpers.JSON(w, http.StatusCreated, "user registered")
}

// Login godoc
// @Summary Authenticate by email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Login data"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "bad credentials"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	refreshTTL, _ := time.ParseDuration(h.cfg.RefreshTokenTTL)

	access, refresh, principal, err := h.authService.LoginUser(
		r.Context(),
		req.Email,
		req.Password,
		h.cfg.JWTSecret,
		accessTTL,
		refreshTTL,
	)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("login rejected", zap.String("email", req.Email), zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        principal.User.Email,
		Role:         principal.User.Role,
		Authorities:  principal.Authorities,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "invalid refresh token"
// @Router /api/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, role, tokenString, ok := h.parseRefreshToken(w, r)
	if !ok {
		return
	}

	valid, err := h.authService.ValidateRefreshToken(r.Context(), userID, tokenString)
	if err != nil || !valid {
		helpers.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	access, err := utils.GenerateToken(h.cfg.JWTSecret, userID, role, accessTTL, "access")
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "failed to issue access token")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{"access_token": access})
}

// Logout godoc
// @Summary Invalidate the presented refresh token
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {string} string "logged out"
// @Failure 401 {string} string "invalid refresh token"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _, tokenString, ok := h.parseRefreshToken(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), userID, tokenString); err != nil {
		helpers.Error(w, http.StatusInternalServerError, "logout failed")
		return
	}
	helpers.JSON(w, http.StatusOK, "logged out")
}

func (h *AuthHandler) parseRefreshToken(w http.ResponseWriter, r *http.Request) (int, string, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		helpers.Error(w, http.StatusUnauthorized, "missing refresh token")
		return 0, "", "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		logger.WithCtx(r.Context()).Warn("invalid refresh token", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return 0, "", "", false
	}

	if claims["token_type"] != "refresh" {
		helpers.Error(w, http.StatusUnauthorized, "not a refresh token")
		return 0, "", "", false
	}

	userID, ok1 := claims["user_id"].(float64)
	role, ok2 := claims["role"].(string)
	if !ok1 || !ok2 {
		helpers.Error(w, http.StatusUnauthorized, "malformed token payload")
		return 0, "", "", false
	}
	return int(userID), role, tokenString, true
}
