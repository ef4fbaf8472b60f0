package generate

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/content"
	"pedagoia-backend/internal/infra/openai"

	"github.com/gin-gonic/gin"
	openailib "github.com/sashabaranov/go-openai"
)

type LessonPlanInput struct {
	ClassLevel             string `json:"classLevel" binding:"required"`
	TotalSessions          string `json:"totalSessions" binding:"required"`
	Subject                string `json:"subject" binding:"required"`
	SubjectMatter          string `json:"subject_matter" binding:"required"`
	Text                   string `json:"text"`
	AdditionalInstructions string `json:"additionalInstructions"`
}

func LessonPlan(c *gin.Context) {
	var in LessonPlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := services.OpenAI.Chat(c.Request.Context(),
		lessonPlanSystemPrompt,
		buildLessonPlanPrompt(in),
		openai.ChatOptions{
			Model:       openailib.GPT4o,
			Temperature: 0.5,
			MaxTokens:   2500,
		})
	if err != nil {
		services.Log.WithError(err).Error("lesson plan generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de la séquence"})
		return
	}

	title := fmt.Sprintf("Séquence - %s (%s)", in.Subject, in.ClassLevel)
	saveHistory(c, content.KindLessonPlan, title, text, in)

	c.JSON(http.StatusOK, gin.H{"lessonPlan": text})
}

type ExercisesInput struct {
	Subject                string `json:"subject" binding:"required"`
	ClassLevel             string `json:"classLevel" binding:"required"`
	NumberOfExercises      string `json:"numberOfExercises"`
	QuestionsPerExercise   string `json:"questionsPerExercise"`
	Objective              string `json:"objective" binding:"required"`
	ExerciseType           string `json:"exerciseType"`
	AdditionalInstructions string `json:"additionalInstructions"`
	SpecificNeeds          string `json:"specificNeeds"`
}

func Exercises(c *gin.Context) {
	var in ExercisesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := services.OpenAI.Chat(c.Request.Context(),
		exercisesSystemPrompt,
		buildExercisesPrompt(in),
		openai.ChatOptions{Temperature: 0.7})
	if err != nil {
		services.Log.WithError(err).Error("exercise generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération des exercices"})
		return
	}

	title := fmt.Sprintf("Exercices - %s (%s)", in.Subject, in.ClassLevel)
	saveHistory(c, content.KindExercises, title, text, in)

	c.JSON(http.StatusOK, gin.H{"exercises": text})
}

type CorrespondenceInput struct {
	Topic             string `json:"topic" binding:"required"`
	Tone              string `json:"tone" binding:"required"`
	Recipient         string `json:"recipient" binding:"required"`
	AdditionalContext string `json:"additionalContext"`
}

func Correspondence(c *gin.Context) {
	var in CorrespondenceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userPrompt := fmt.Sprintf("Sujet: %s\nContexte additionnel: %s", in.Topic, in.AdditionalContext)
	text, err := services.OpenAI.Chat(c.Request.Context(),
		correspondenceSystemPrompt(in.Tone, in.Recipient),
		userPrompt,
		openai.ChatOptions{Temperature: 0.7, MaxTokens: 500})
	if err != nil {
		services.Log.WithError(err).Error("correspondence generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération du message"})
		return
	}

	title := fmt.Sprintf("Correspondance - %s", in.Topic)
	saveHistory(c, content.KindCorrespondence, title, text, in)

	c.JSON(http.StatusOK, gin.H{"text": text})
}

type LyricsInput struct {
	Subject    string `json:"subject" binding:"required"`
	ClassLevel string `json:"classLevel" binding:"required"`
	MusicStyle string `json:"musicStyle"`
	FromText   string `json:"fromText"`
}

func Lyrics(c *gin.Context) {
	var in LyricsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := services.OpenAI.Chat(c.Request.Context(),
		lyricsSystemPrompt,
		buildLyricsPrompt(in),
		openai.ChatOptions{
			Model:       openailib.GPT4Turbo,
			Temperature: 0.7,
			MaxTokens:   1000,
		})
	if err != nil {
		services.Log.WithError(err).Error("lyrics generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération des paroles"})
		return
	}

	lyrics := formatLyrics(raw, in.Subject, in.FromText)
	title := fmt.Sprintf("Chanson - %s (%s)", in.Subject, in.ClassLevel)
	saveHistory(c, content.KindLyrics, title, lyrics, in)

	c.JSON(http.StatusOK, gin.H{
		"title":   title,
		"content": fmt.Sprintf("Chanson pour le niveau %s en %s", in.ClassLevel, in.Subject),
		"lyrics":  lyrics,
	})
}

// saveHistory records the generation so it shows up in saved content. A
// failed insert is logged but never fails the request.
func saveHistory(c *gin.Context, kind, title, body string, params interface{}) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		return
	}

	raw, err := json.Marshal(params)
	if err != nil {
		raw = []byte("{}")
	}

	row := content.GeneratedContent{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
		Params: string(raw),
	}
	if err := database.DB.Create(&row).Error; err != nil {
		services.Log.WithError(err).WithField("kind", kind).Error("failed to save generated content")
	}
}
