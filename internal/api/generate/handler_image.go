package generate

import (
	"net/http"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/content"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageInput struct {
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style"`
}

func Image(c *gin.Context) {
	var in ImageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prompt est requis"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	prompt := in.Prompt
	if in.Style != "" {
		prompt = prompt + ", style " + in.Style
	}

	url, err := services.OpenAI.GenerateImage(c.Request.Context(), prompt)
	if err != nil {
		logImageError(userID, in.Prompt, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de l'image"})
		return
	}

	img := content.GeneratedImage{
		PublicID: uuid.NewString(),
		UserID:   userID,
		Prompt:   in.Prompt,
		Style:    in.Style,
		URL:      url,
		Status:   "completed",
	}
	if err := database.DB.Create(&img).Error; err != nil {
		services.Log.WithError(err).Error("failed to save generated image")
	}

	c.JSON(http.StatusOK, gin.H{
		"id":  img.PublicID,
		"url": url,
	})
}

func logImageError(userID uint, prompt string, genErr error) {
	services.Log.WithError(genErr).WithField("user_id", userID).Error("image generation failed")

	row := content.ImageGenerationError{
		UserID:  userID,
		Prompt:  prompt,
		Message: genErr.Error(),
	}
	if err := database.DB.Create(&row).Error; err != nil {
		services.Log.WithError(err).Error("failed to record image generation error")
	}
}
