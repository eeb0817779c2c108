package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pawlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "pawlink-chat-service"

// generateToken issues a signed JWT carrying the user's identity claims.
func generateToken(user *models.User, secret []byte, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.DisplayName,
		"role":    user.Role,
		"exp":     time.Now().Add(expiry).Unix(),
		"iss":     tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// parseToken validates a JWT and returns the user reference embedded in it.
func parseToken(tokenString string, secret []byte) (models.UserRef, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.UserRef{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.UserRef{}, errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return models.UserRef{}, errors.New("token missing user_id")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return models.UserRef{ID: userID, Name: name, Role: role}, nil
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials against the user store and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := generateToken(user, h.Cfg.JWTSecret, h.Cfg.JWTExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Ref()})
}

// AuthRequired parses the bearer token and stores the caller's reference in
// the request context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.userFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

func (h *Handler) userFromRequest(c *gin.Context) (models.UserRef, error) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return models.UserRef{}, errors.New("authorization token missing")
	}
	return parseToken(strings.TrimPrefix(authHeader, "Bearer "), h.Cfg.JWTSecret)
}

func currentUser(c *gin.Context) models.UserRef {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(models.UserRef); ok {
			return user
		}
	}
	return models.UserRef{}
}
