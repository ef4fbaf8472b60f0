package content

import (
	"time"
)

// Content kinds mirror the generation tools.
const (
	KindLessonPlan     = "lesson_plan"
	KindExercises      = "exercises"
	KindCorrespondence = "correspondence"
	KindLyrics         = "lyrics"
)

// GeneratedContent stores an LLM response verbatim, keyed by the tool that
// produced it. It backs the saved-content history views.
type GeneratedContent struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index:idx_generated_contents_user_id"`
	Kind   string `gorm:"type:varchar(30);not null;index"`
	Title  string `gorm:"not null"`
	Body   string `gorm:"type:text;not null"`

	// Generation parameters as submitted, for re-runs and display.
	Params string `gorm:"type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GeneratedImage records a DALL-E generation. The URL points at the hosted
// image; PublicID is the stable identifier exposed to the UI.
type GeneratedImage struct {
	ID       uint   `gorm:"primaryKey"`
	PublicID string `gorm:"type:uuid;not null;uniqueIndex"`
	UserID   uint   `gorm:"not null;index:idx_generated_images_user_id"`
	Prompt   string `gorm:"type:text;not null"`
	Style    string
	URL      string `gorm:"type:text"`
	Status   string `gorm:"type:varchar(20);not null;default:'completed'"`

	CreatedAt time.Time
}

// ImageGenerationError keeps failed generations for support diagnosis.
type ImageGenerationError struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"index"`
	Prompt  string `gorm:"type:text"`
	Message string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
