// File: /controllers/friend_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"socialnet-api/database"
	"socialnet-api/middleware"
	"socialnet-api/models"
	"socialnet-api/utils"
)

type FriendController struct {
	db *gorm.DB
}

func NewFriendController(db *gorm.DB) *FriendController {
	return &FriendController{db: db}
}

type FriendRequestBody struct {
	FriendID string `json:"friendId" binding:"required"`
}

// GetFriends lists accepted friendships. The relation is symmetric: the
// caller may appear on either side of the row.
func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var friends []models.FriendInfo
	err := fc.db.Raw(`
		SELECT u.id, u.username, u.first_name, u.last_name, u.avatar
		FROM friends f
		JOIN users u ON (u.id = f.user_id OR u.id = f.friend_id) AND u.id != ?
		WHERE (f.user_id = ? OR f.friend_id = ?) AND f.status = ?`,
		userID, userID, userID, models.FriendStatusAccepted,
	).Scan(&friends).Error
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

func (fc *FriendController) SendRequest(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.FriendID == userID {
		utils.SendError(c, http.StatusBadRequest, "Cannot add yourself")
		return
	}

	var target models.User
	if err := fc.db.First(&target, "id = ?", req.FriendID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	// Either direction counts as an existing relation.
	var existing models.Friend
	err := fc.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, req.FriendID, req.FriendID, userID,
	).First(&existing).Error
	if err == nil {
		utils.SendError(c, http.StatusBadRequest, "Request already exists")
		return
	}

	friend := models.Friend{
		UserID:   userID,
		FriendID: req.FriendID,
		Status:   models.FriendStatusPending,
	}

	if err := fc.db.Create(&friend).Error; err != nil {
		if database.IsUniqueViolation(err, "friends") {
			utils.SendError(c, http.StatusBadRequest, "Request already exists")
			return
		}
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request sent"})
}

// AcceptRequest flips a pending request to accepted. Only the named
// recipient of the request can accept it.
func (fc *FriendController) AcceptRequest(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	res := fc.db.Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", req.FriendID, userID, models.FriendStatusPending).
		Update("status", models.FriendStatusAccepted)
	if res.Error != nil {
		utils.SendServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.SendError(c, http.StatusNotFound, "Request not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}
