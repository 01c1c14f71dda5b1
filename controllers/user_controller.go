// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"socialnet-api/config"
	"socialnet-api/database"
	"socialnet-api/middleware"
	"socialnet-api/models"
	"socialnet-api/utils"
)

type UserController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{db: db, cfg: cfg}
}

// UpdateProfile handles the multipart profile form: firstName, lastName,
// phone, email and an optional avatar file. Last write wins; no
// cross-request ordering is needed here.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	firstName := strings.TrimSpace(c.PostForm("firstName"))
	lastName := strings.TrimSpace(c.PostForm("lastName"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	email := strings.TrimSpace(c.PostForm("email"))

	if firstName == "" || lastName == "" || phone == "" || email == "" {
		utils.SendError(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if !utils.IsValidEmail(email) {
		utils.SendError(c, http.StatusBadRequest, "Invalid email")
		return
	}
	if !utils.IsValidPhone(phone) {
		utils.SendError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	// Email/phone must stay unique across the other users.
	var existing models.User
	if err := uc.db.Where("(email = ? OR phone = ?) AND id != ?", email, phone, userID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusBadRequest, "Email or phone already in use")
		return
	}

	updates := map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"phone":      phone,
		"email":      email,
	}

	var newAvatar, oldAvatar *string
	if file, err := c.FormFile("avatar"); err == nil {
		path, err := utils.SaveUpload(c, file, uc.cfg.UploadDir, "avatars")
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, err.Error())
			return
		}
		newAvatar = &path
		oldAvatar = user.Avatar
		updates["avatar"] = path
	}

	if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
		if newAvatar != nil {
			utils.RemoveUpload(uc.cfg.UploadDir, *newAvatar)
		}
		if database.IsUniqueViolation(err, "users") {
			utils.SendError(c, http.StatusBadRequest, "Email or phone already in use")
			return
		}
		utils.SendServerError(c, err)
		return
	}

	if oldAvatar != nil {
		utils.RemoveUpload(uc.cfg.UploadDir, *oldAvatar)
	}

	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    user.Public(),
	})
}
