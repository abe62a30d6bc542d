package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

const adminSubject = "admin"

type AuthHandler struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthHandler hashes the configured admin password once at boot.
func NewAuthHandler(cfg config.AuthConfig) (*AuthHandler, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &AuthHandler{
		passwordHash: hashed,
		secret:       []byte(cfg.JWTSecret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidBody(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Contraseña incorrecta.")
		return
	}

	token, exp, err := h.generateToken()
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar el token.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"subject": c.GetString(middleware.ContextSubject),
		"role":    c.GetString(middleware.ContextUserRole),
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken() (string, time.Time, error) {
	now := h.now()
	exp := now.Add(h.ttl)

	claims := jwt.MapClaims{
		"sub":  adminSubject,
		"role": middleware.RoleAdmin,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
