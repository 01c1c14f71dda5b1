// File: /controllers/auth_controller.go
package controllers

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"socialnet-api/config"
	"socialnet-api/database"
	"socialnet-api/middleware"
	"socialnet-api/models"
	"socialnet-api/services"
	"socialnet-api/utils"
)

// Uniform on purpose: the response never reveals whether the identifier or
// the password was wrong.
const invalidLoginMessage = "Invalid login or password"

type AuthController struct {
	db           *gorm.DB
	sessions     services.SessionStore
	emailService *services.EmailService
	cfg          *config.Config
}

func NewAuthController(db *gorm.DB, sessions services.SessionStore, emailService *services.EmailService, cfg *config.Config) *AuthController {
	return &AuthController{
		db:           db,
		sessions:     sessions,
		emailService: emailService,
		cfg:          cfg,
	}
}

type RegisterRequest struct {
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Username  string `json:"username"` // Optional - generated if not provided
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !utils.IsValidEmail(req.Email) {
		utils.SendError(c, http.StatusBadRequest, "Invalid email")
		return
	}
	if !utils.IsValidPhone(req.Phone) {
		utils.SendError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}
	if !utils.IsValidPassword(req.Password) {
		utils.SendError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	// Fast duplicate check; the unique indexes backstop the race below.
	var existing models.User
	if err := ac.db.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusBadRequest, "User already exists")
		return
	}

	username := req.Username
	if username == "" {
		username = ac.generateUsername()
	} else {
		if err := ac.db.Where("username = ?", username).First(&existing).Error; err == nil {
			utils.SendError(c, http.StatusBadRequest, "Username already taken")
			return
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err, "") {
			utils.SendError(c, http.StatusBadRequest, "User already exists")
			return
		}
		utils.SendServerError(c, err)
		return
	}

	// Registration doubles as login.
	token, err := ac.sessions.Create(user.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	ac.setSessionCookie(c, token)

	if ac.emailService.Enabled() {
		go func() {
			if err := ac.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
				log.Printf("Failed to send welcome email: %v", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registered successfully",
		"username": user.Username,
		"id":       user.ID,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	// A single credential matched against both email and phone.
	var user models.User
	if err := ac.db.Where("email = ? OR phone = ?", req.Login, req.Login).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusBadRequest, invalidLoginMessage)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusBadRequest, invalidLoginMessage)
		return
	}

	token, err := ac.sessions.Create(user.ID)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}
	ac.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged in",
		"user":     user.Public(),
		"redirect": "/",
	})
}

// Me is an idempotent read of the current identity. Anonymous requests get
// {"user": null}, never an error.
func (ac *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := ac.sessions.Destroy(token); err != nil {
			utils.SendServerError(c, err)
			return
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (ac *AuthController) UpdatePassword(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !utils.IsValidPassword(req.NewPassword) {
		utils.SendError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Wrong password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	if err := ac.db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(ac.cfg.SessionLifetime.Seconds()), "/", "", false, true)
}

var generatedUsernameRe = regexp.MustCompile(`^user(\d+)$`)

// generateUsername produces user<N+1> where N is the highest numeric suffix
// among existing generated usernames.
func (ac *AuthController) generateUsername() string {
	var usernames []string
	ac.db.Model(&models.User{}).Where("username LIKE ?", "user%").Pluck("username", &usernames)

	max := 0
	for _, name := range usernames {
		m := generatedUsernameRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}

	return fmt.Sprintf("user%d", max+1)
}
