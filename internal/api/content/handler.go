package content

import (
	"net/http"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
)

type SavedContentDTO struct {
	ID        uint   `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// GET /content?kind=lesson_plan
func ListSavedContent(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var rows []content.GeneratedContent
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved content"})
		return
	}

	result := []SavedContentDTO{}
	for _, r := range rows {
		result = append(result, SavedContentDTO{
			ID:        r.ID,
			Kind:      r.Kind,
			Title:     r.Title,
			Body:      r.Body,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

// GET /content/:id
func GetSavedContent(c *gin.Context) {
	userID := c.GetUint("user_id")

	var row content.GeneratedContent
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, row)
}

// DELETE /content/:id
func DeleteSavedContent(c *gin.Context) {
	userID := c.GetUint("user_id")

	res := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&content.GeneratedContent{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// GET /content/images
func ListImages(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var images []content.GeneratedImage
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load images"})
		return
	}

	c.JSON(http.StatusOK, images)
}
