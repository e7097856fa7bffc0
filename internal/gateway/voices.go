package gateway

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/M1DES1/aigenimgtovid/internal/heygen"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// VoicePreference selects a catalog voice by language prefix and gender.
type VoicePreference struct {
	LocalePrefix string
	Gender       string
}

var defaultVoicePreference = VoicePreference{LocalePrefix: "en", Gender: "female"}

var styleVoices = map[string]VoicePreference{
	"realistic":   {LocalePrefix: "en", Gender: "female"},
	"cinematic":   {LocalePrefix: "en", Gender: "male"},
	"animated":    {LocalePrefix: "en", Gender: "female"},
	"fantasy":     {LocalePrefix: "en", Gender: "male"},
	"documentary": {LocalePrefix: "en", Gender: "male"},
	"polish":      {LocalePrefix: "pl", Gender: "female"},
}

var dimensions = map[models.Dimension]heygen.Dimension{
	models.DimensionPortrait:  {Width: 1080, Height: 1920},
	models.DimensionSquare:    {Width: 1080, Height: 1080},
	models.DimensionLandscape: {Width: 1920, Height: 1080},
}

// PreferenceForStyle returns the voice preference for a style label, or the default.
func PreferenceForStyle(style string) VoicePreference {
	if pref, ok := styleVoices[strings.ToLower(strings.TrimSpace(style))]; ok {
		return pref
	}
	return defaultVoicePreference
}

// DimensionFor resolves a preset into pixels. Unknown presets resolve to portrait.
func DimensionFor(d models.Dimension) heygen.Dimension {
	if dim, ok := dimensions[models.ParseDimension(string(d))]; ok {
		return dim
	}
	return dimensions[models.DimensionPortrait]
}

// SelectVoice picks the first voice matching the preference, falling back to the first voice.
func SelectVoice(voices []heygen.Voice, pref VoicePreference) (heygen.Voice, bool) {
	if len(voices) == 0 {
		return heygen.Voice{}, false
	}
	match, ok := lo.Find(voices, func(v heygen.Voice) bool {
		locale := strings.ToLower(v.LocaleOrLanguage())
		return strings.HasPrefix(locale, strings.ToLower(pref.LocalePrefix)) &&
			strings.EqualFold(v.Gender, pref.Gender)
	})
	if ok {
		return match, true
	}
	return voices[0], true
}

// VoiceSummary is the client-facing view of a catalog voice.
type VoiceSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

func summarizeVoices(voices []heygen.Voice) []VoiceSummary {
	return lo.Map(voices, func(v heygen.Voice, _ int) VoiceSummary {
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("Voice (%s)", v.LocaleOrLanguage())
		}
		return VoiceSummary{ID: v.VoiceID, Name: name, Gender: v.Gender, Language: v.LocaleOrLanguage()}
	})
}
