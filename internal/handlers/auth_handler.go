package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/repositories"
	"taskboard/internal/services"
	"taskboard/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthHandler struct {
	users repositories.UserRepository
	auth  services.AuthService
}

func NewAuthHandler(users repositories.UserRepository, auth services.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

func issueAccessToken(userID int64) (string, error) {
	claims := middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.SigningKey())
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		log.Printf("[auth][login][err] email=%q: not found", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := h.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		log.Printf("[auth][login][err] email=%q: bad password", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	access, err := issueAccessToken(user.ID)
	if err != nil {
		log.Printf("[auth][login][err] sign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	refresh, err := utils.NewOpaqueToken(32)
	if err != nil {
		log.Printf("[auth][login][err] refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	expires := time.Now().Add(refreshTokenTTL)
	if err := h.users.UpdateRefresh(c.Request.Context(), user.ID, refresh, expires); err != nil {
		log.Printf("[auth][login][err] store refresh: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	log.Printf("[auth][login][ok] user=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"expires_in":    int(accessTokenTTL.Seconds()),
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// @Summary      Refresh access token
// @Description  Rotates the refresh token; the old one is invalidated
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := utils.NewOpaqueToken(32)
	if err != nil {
		log.Printf("[auth][refresh][err] token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	expires := time.Now().Add(refreshTokenTTL)
	user, err := h.users.RotateRefresh(c.Request.Context(), req.RefreshToken, next, expires)
	if err != nil || user == nil {
		log.Printf("[auth][refresh][err] rotate: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	access, err := issueAccessToken(user.ID)
	if err != nil {
		log.Printf("[auth][refresh][err] sign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	log.Printf("[auth][refresh][ok] user=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": next,
		"expires_in":    int(accessTokenTTL.Seconds()),
	})
}
