// File: /controllers/like_controller.go
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

type LikeController struct {
	db *gorm.DB
}

func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{db: db}
}

type ToggleLikeRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

// ToggleLike flips the caller's like on a post: delete if present, insert
// if absent. Repeated calls alternate; two calls return to the original
// state. The whole test-then-act runs in one transaction, and the unique
// index on (post_id, user_id) backstops a concurrent double insert: a
// unique violation means the other toggle won, so this one retries as a
// delete. The returned likes_count is recomputed from like rows.
func (lc *LikeController) ToggleLike(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var post models.Post
	if err := lc.db.First(&post, "id = ?", req.PostID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var liked bool
	var likesCount int64

	err := lc.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.PostLike{}, "post_id = ? AND user_id = ?", req.PostID, userID)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := models.PostLike{PostID: req.PostID, UserID: userID}
			switch err := tx.Create(&like).Error; {
			case err == nil:
				liked = true
			case database.IsUniqueViolation(err, "post_likes"):
				// Lost the race against a concurrent toggle that inserted
				// first; flip back off and still report the real aggregate.
				if err := tx.Delete(&models.PostLike{}, "post_id = ? AND user_id = ?", req.PostID, userID).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Model(&models.PostLike{}).Where("post_id = ?", req.PostID).Count(&likesCount).Error
	})
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"likes_count": likesCount,
	})
}
