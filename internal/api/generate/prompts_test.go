package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLessonPlanPrompt(t *testing.T) {
	in := LessonPlanInput{
		ClassLevel:    "CM2",
		TotalSessions: "5",
		Subject:       "les fractions",
		SubjectMatter: "mathématiques",
	}

	prompt := buildLessonPlanPrompt(in)

	assert.Contains(t, prompt, "classe de CM2")
	assert.Contains(t, prompt, "mathématiques")
	assert.Contains(t, prompt, "Objectifs d'apprentissage précis : les fractions")
	assert.Contains(t, prompt, "5 séances")
	assert.NotContains(t, prompt, "Texte ou ressource")
	assert.NotContains(t, prompt, "Instructions particulières")
}

func TestBuildLessonPlanPromptOptionalFields(t *testing.T) {
	in := LessonPlanInput{
		ClassLevel:             "6e",
		Subject:                "la conjugaison",
		SubjectMatter:          "français",
		Text:                   "Le petit prince, chapitre 1",
		AdditionalInstructions: "inclure une dictée",
	}

	prompt := buildLessonPlanPrompt(in)

	assert.Contains(t, prompt, "Texte ou ressource à utiliser : Le petit prince, chapitre 1")
	assert.Contains(t, prompt, "Instructions particulières : inclure une dictée")
	assert.Contains(t, prompt, "4 séances", "session count defaults when unset")
}

func TestBuildExercisesPromptDefaults(t *testing.T) {
	in := ExercisesInput{
		Subject:    "géométrie",
		ClassLevel: "CE2",
		Objective:  "reconnaître les polygones",
	}

	prompt := buildExercisesPrompt(in)

	assert.Contains(t, prompt, "Crée 3 exercice(s) de géométrie pour une classe de CE2.")
	assert.Contains(t, prompt, "3 question(s) minimum")
	assert.Contains(t, prompt, "Type d'exercice souhaité: Au choix")
	assert.NotContains(t, prompt, "Besoins spécifiques")
}

func TestCorrespondenceSystemPromptRecipients(t *testing.T) {
	tests := []struct {
		recipient string
		want      string
	}{
		{"parents", "des parents d'élèves"},
		{"director", "la direction de l'établissement"},
		{"inspector", "l'inspection académique"},
		{"colleague", "un(e) collègue"},
		{"", "un(e) collègue"},
	}

	for _, tt := range tests {
		t.Run(tt.recipient, func(t *testing.T) {
			prompt := correspondenceSystemPrompt("formel", tt.recipient)
			assert.Contains(t, prompt, tt.want)
			assert.Contains(t, prompt, "message formel")
		})
	}
}

func TestFormatLyricsCleansMarkers(t *testing.T) {
	raw := "**[Titre]** La ronde des fractions\n\n[Couplet 1]\nUn demi, un quart\n\n[Refrain]\nComptons ensemble"

	got := formatLyrics(raw, "les fractions", "")

	assert.True(t, strings.HasPrefix(got, "Titre:"))
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "[")
	assert.Contains(t, got, "Couplet 1:")
	assert.Contains(t, got, "\n\nRefrain:")
}

func TestFormatLyricsAddsMissingTitle(t *testing.T) {
	raw := "Couplet 1:\nLes verbes du premier groupe"

	got := formatLyrics(raw, "la conjugaison", "")
	assert.True(t, strings.HasPrefix(got, "Titre: Chanson sur la conjugaison"))

	withSource := formatLyrics(raw, "la conjugaison", "un texte source")
	assert.True(t, strings.HasPrefix(withSource, "Titre: la conjugaison en chanson"))
}
