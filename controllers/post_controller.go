// File: /controllers/post_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"socialnet-api/config"
	"socialnet-api/middleware"
	"socialnet-api/models"
	"socialnet-api/utils"
)

type PostController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewPostController(db *gorm.DB, cfg *config.Config) *PostController {
	return &PostController{db: db, cfg: cfg}
}

// GetPosts returns the feed, newest first. Anonymous viewers get
// liked_by_me=false everywhere. likes_count is computed from like rows on
// every read so it can never drift.
func (pc *PostController) GetPosts(c *gin.Context) {
	viewerID := c.GetString(middleware.ContextUserIDKey)

	var posts []models.Post
	if err := pc.db.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.SendServerError(c, err)
		return
	}

	feed := make([]models.PostWithMeta, 0, len(posts))
	for _, post := range posts {
		feed = append(feed, models.PostWithMeta{
			Post:       post,
			Username:   post.User.Username,
			UserAvatar: post.User.Avatar,
			LikesCount: pc.countLikes(post.ID),
			LikedByMe:  viewerID != "" && pc.isLikedBy(post.ID, viewerID),
		})
	}

	c.JSON(http.StatusOK, feed)
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)

	text := strings.TrimSpace(c.PostForm("text"))
	if !utils.IsValidPostText(text) {
		utils.SendError(c, http.StatusBadRequest, "Text is required")
		return
	}

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil {
		path, err := utils.SaveUpload(c, file, pc.cfg.UploadDir, "posts")
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, err.Error())
			return
		}
		imagePath = &path
	}

	post := models.Post{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   text,
		Image:  imagePath,
	}

	if err := pc.db.Create(&post).Error; err != nil {
		// Don't orphan the file the client just uploaded.
		if imagePath != nil {
			utils.RemoveUpload(pc.cfg.UploadDir, *imagePath)
		}
		utils.SendServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created",
		"post":    post,
	})
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	// Ownership is re-checked here from the session identity, never from
	// anything the client sent.
	if post.UserID != userID {
		utils.SendError(c, http.StatusForbidden, "Not the post owner")
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if !utils.IsValidPostText(text) {
		utils.SendError(c, http.StatusBadRequest, "Text is required")
		return
	}

	updates := map[string]interface{}{"text": text}
	var removedImage *string

	if c.PostForm("deleteImage") == "true" && post.Image != nil {
		removedImage = post.Image
		updates["image"] = nil
	}

	var newImage *string
	if file, err := c.FormFile("image"); err == nil {
		path, err := utils.SaveUpload(c, file, pc.cfg.UploadDir, "posts")
		if err != nil {
			utils.SendError(c, http.StatusBadRequest, err.Error())
			return
		}
		newImage = &path
		updates["image"] = path
		if post.Image != nil {
			removedImage = post.Image
		}
	}

	if err := pc.db.Model(&post).Updates(updates).Error; err != nil {
		if newImage != nil {
			utils.RemoveUpload(pc.cfg.UploadDir, *newImage)
		}
		utils.SendServerError(c, err)
		return
	}

	if removedImage != nil {
		utils.RemoveUpload(pc.cfg.UploadDir, *removedImage)
	}

	response := gin.H{"success": true}
	if newImage != nil {
		response["image"] = *newImage
	}
	c.JSON(http.StatusOK, response)
}

// DeletePost removes a post. Allowed for the owner, or for a user holding
// the administrator role.
func (pc *PostController) DeletePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID && !user.IsAdmin() {
		utils.SendError(c, http.StatusForbidden, "Not the post owner")
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PostLike{}, "post_id = ?", postID).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.SendServerError(c, err)
		return
	}

	if post.Image != nil {
		utils.RemoveUpload(pc.cfg.UploadDir, *post.Image)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (pc *PostController) countLikes(postID string) int64 {
	var count int64
	pc.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count)
	return count
}

func (pc *PostController) isLikedBy(postID, userID string) bool {
	var count int64
	pc.db.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count)
	return count > 0
}
