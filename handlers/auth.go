package handlers

import (
	"net/http"

	"dog-walk-service/errs"
	"dog-walk-service/middleware"
	"dog-walk-service/models"
	"dog-walk-service/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string          `json:"username" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=owner walker"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.ConstraintViolation})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to hash password", err))
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		writeError(c, errs.Wrap(errs.ConstraintViolation, "username or email already registered", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"user_id": user.ID,
	})
}

// Login validates credentials, opens a server-side session and also returns
// a JWT for non-browser clients. Mismatch never reveals which field was wrong.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.InvalidCredentials})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		writeError(c, errs.New(errs.InvalidCredentials, "invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(c, errs.New(errs.InvalidCredentials, "invalid email or password"))
		return
	}

	token := h.Sessions.Create(session.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	c.SetCookie(session.CookieName, token, 86400, "/", "", false, true)

	apiToken, err := middleware.GenerateToken(h.JWTSecret, &user)
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"role":    user.Role,
		"token":   apiToken,
	})
}

// Me returns the caller's session snapshot
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":  middleware.GetUserID(c),
		"username": middleware.GetUsername(c),
		"role":     middleware.GetRole(c),
	})
}

// Logout destroys the server-side session and clears the cookie
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		h.Sessions.Destroy(token)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
