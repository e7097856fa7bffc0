package generation

import (
	"fmt"
	"path/filepath"
	"strings"
)

var styleLabels = map[string]string{
	"realistic":   "Realistic",
	"cinematic":   "Cinematic",
	"animated":    "Animated",
	"fantasy":     "Fantasy",
	"documentary": "Documentary",
	"polish":      "Polish narration",
}

// StyleLabel returns the display label of a style key.
func StyleLabel(style string) string {
	key := strings.ToLower(strings.TrimSpace(style))
	if label, ok := styleLabels[key]; ok {
		return label
	}
	if key == "" {
		return "Default"
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// EnrichPrompt appends style and motion hints to the user prompt.
func EnrichPrompt(prompt, style string, motion int) string {
	prompt = strings.TrimRight(strings.TrimSpace(prompt), ".")
	return fmt.Sprintf("%s. Style: %s. Motion intensity: %d/10.", prompt, StyleLabel(style), clampMotion(motion))
}

// SuggestPrompt derives a prompt from an image file name.
func SuggestPrompt(fileName string) string {
	base := filepath.Base(strings.TrimSpace(fileName))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "." {
		base = "the image"
	}
	return fmt.Sprintf("Animation of %s in motion.", base)
}

func clampMotion(motion int) int {
	switch {
	case motion <= 0:
		return 5
	case motion > 10:
		return 10
	default:
		return motion
	}
}
