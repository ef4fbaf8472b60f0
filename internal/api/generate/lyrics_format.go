package generate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bracketSection = regexp.MustCompile(`\[([^\]]+)\]`)
	sectionHeader  = regexp.MustCompile(`(?m)^(Titre|Refrain|Couplet \d+)[^\w:]*:`)
	refrainHeader  = regexp.MustCompile(`Refrain:`)
	coupletHeader  = regexp.MustCompile(`Couplet \d+:`)
)

// formatLyrics cleans raw model output into the "Titre: / Couplet n: /
// Refrain:" layout the frontend renders.
func formatLyrics(raw, subject, fromText string) string {
	lyrics := strings.ReplaceAll(raw, "**", "")
	lyrics = bracketSection.ReplaceAllString(lyrics, "$1:")
	lyrics = sectionHeader.ReplaceAllString(lyrics, "$1:")
	lyrics = strings.TrimSpace(lyrics)

	lyrics = refrainHeader.ReplaceAllString(lyrics, "\n\nRefrain:")
	lyrics = coupletHeader.ReplaceAllStringFunc(lyrics, func(m string) string {
		return "\n\n" + m
	})
	lyrics = strings.TrimSpace(lyrics)

	if !strings.HasPrefix(lyrics, "Titre:") {
		if strings.TrimSpace(fromText) != "" {
			lyrics = fmt.Sprintf("Titre: %s en chanson\n\n%s", subject, lyrics)
		} else {
			lyrics = fmt.Sprintf("Titre: Chanson sur %s\n\n%s", subject, lyrics)
		}
	}

	return lyrics
}
