package generate

import (
	"fmt"
	"strings"
)

const lessonPlanSystemPrompt = "Vous êtes un assistant pédagogique spécialisé dans la création de séquences d'enseignement pour l'Éducation Nationale française. Vos réponses sont structurées, concises et directement applicables en classe."

func buildLessonPlanPrompt(in LessonPlanInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "En tant qu'enseignant expert de l'Éducation Nationale française, créez une séquence pédagogique détaillée pour une classe de %s en %s, centrée sur %s.",
		in.ClassLevel, in.SubjectMatter, in.Subject)

	fmt.Fprintf(&b, "\n\nObjectifs d'apprentissage précis : %s", in.Subject)

	if in.Text != "" {
		fmt.Fprintf(&b, "\n\nTexte ou ressource à utiliser : %s", in.Text)
	}
	if in.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "\n\nInstructions particulières : %s", in.AdditionalInstructions)
	}

	sessions := in.TotalSessions
	if sessions == "" {
		sessions = "4"
	}
	fmt.Fprintf(&b, "\n\nStructurez votre séquence en %s séances, avec les sections suivantes OBLIGATOIRES :\n", sessions)
	b.WriteString(`1. Objectifs et prérequis
2. Organisation (durée et matériel)
3. Déroulement détaillé des séances
4. Évaluation
5. Prolongements

Important : Concentrez-vous sur des contenus directement utilisables en classe. Évitez les formulations trop générales.`)

	return b.String()
}

const exercisesSystemPrompt = `Tu es un professeur expérimenté qui crée des exercices pédagogiques.

Règles importantes pour le format:
- Commence par "Fiche élève" une seule fois
- Liste les exercices numérotés
- Chaque exercice DOIT commencer par une consigne claire et détaillée
- La consigne doit expliquer exactement ce que l'élève doit faire
- Termine par une section "FICHE PÉDAGOGIQUE" avec :
  * Les consignes détaillées pour l'enseignant
  * Les corrections complètes
  * Les explications pédagogiques

Règles pour le contenu:
- Propose toujours au minimum 3 exercices différents si le nombre n'est pas spécifié
- Chaque exercice doit contenir au minimum 3 questions si le nombre n'est pas spécifié
- Ne jamais proposer un seul exercice ou une seule question par exercice
- Les consignes doivent être adaptées au niveau des élèves
- Utilise un vocabulaire précis et adapté au niveau`

func buildExercisesPrompt(in ExercisesInput) string {
	count := in.NumberOfExercises
	if count == "" {
		count = "3"
	}
	questions := in.QuestionsPerExercise
	if questions == "" {
		questions = "3"
	}
	exerciseType := in.ExerciseType
	if exerciseType == "" {
		exerciseType = "Au choix"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Crée %s exercice(s) de %s pour une classe de %s.\n", count, in.Subject, in.ClassLevel)
	fmt.Fprintf(&b, "Chaque exercice doit contenir %s question(s) minimum.\n\n", questions)
	fmt.Fprintf(&b, "Objectif pédagogique / Thème: %s\n", in.Objective)
	fmt.Fprintf(&b, "Type d'exercice souhaité: %s\n", exerciseType)
	if in.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "Instructions supplémentaires: %s\n", in.AdditionalInstructions)
	}
	if in.SpecificNeeds != "" {
		fmt.Fprintf(&b, "Besoins spécifiques: %s\n", in.SpecificNeeds)
	}
	b.WriteString(`
Assure-toi que:
1. Chaque exercice a une consigne claire et explicite
2. Les exercices sont progressifs et adaptés au niveau
3. Les consignes sont visibles et bien formatées`)

	return b.String()
}

func correspondenceSystemPrompt(tone, recipient string) string {
	var audience string
	switch recipient {
	case "parents":
		audience = "des parents d'élèves"
	case "director":
		audience = "la direction de l'établissement"
	case "inspector":
		audience = "l'inspection académique"
	default:
		audience = "un(e) collègue"
	}

	return fmt.Sprintf(`Tu es un assistant spécialisé dans la rédaction de correspondances professionnelles en milieu scolaire.
Tu dois générer un message %s destiné à %s.
Le message doit être professionnel, respectueux et adapté au destinataire.
Utilise les formules de politesse appropriées en fonction du destinataire.
Important : Sois concis et va directement à l'essentiel. La réponse ne doit pas dépasser 250-300 mots.`, tone, audience)
}

const lyricsSystemPrompt = `Tu es un expert en pédagogie et en écriture de chansons.
Ta mission est de créer des paroles de chansons éducatives et engageantes.
Ces paroles doivent être adaptées au niveau scolaire ciblé, faciles à retenir et pédagogiquement efficaces.
Assure-toi d'intégrer clairement l'objectif d'apprentissage et d'utiliser un vocabulaire adapté à l'âge des élèves.
Crée une structure simple avec titre, couplets et refrain.
IMPORTANT: Limite la chanson à 3 couplets maximum pour plus d'efficacité.`

func buildLyricsPrompt(in LyricsInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Écris une chanson éducative sur %s pour une classe de %s.", in.Subject, in.ClassLevel)
	if in.MusicStyle != "" {
		fmt.Fprintf(&b, "\nStyle musical souhaité : %s.", in.MusicStyle)
	}
	if in.FromText != "" {
		fmt.Fprintf(&b, "\n\nAppuie-toi sur ce texte source :\n%s", in.FromText)
	}
	return b.String()
}
