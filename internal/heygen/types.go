package heygen

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// CreateVideoRequest is the body accepted by POST /v2/video/generate.
type CreateVideoRequest struct {
	VideoInputs []VideoInput `json:"video_inputs"`
	Dimension   Dimension    `json:"dimension"`
	Test        bool         `json:"test"`
	Version     string       `json:"version,omitempty"`
}

// VideoInput describes one scene of the generated video.
type VideoInput struct {
	Character  Character  `json:"character"`
	Voice      VoiceInput `json:"voice"`
	Background Background `json:"background"`
}

// Character references the avatar that is animated.
type Character struct {
	Type     string `json:"type"`
	AvatarID string `json:"avatar_id"`
}

// VoiceInput is either a text-to-speech block or a silence block.
type VoiceInput struct {
	Type      string  `json:"type"`
	InputText string  `json:"input_text,omitempty"`
	VoiceID   string  `json:"voice_id,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
}

// Background is the scene backdrop.
type Background struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Dimension is the output frame size in pixels.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Voice is an entry of the provider voice catalog.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Locale   string `json:"locale"`
	Language string `json:"language"`
}

// LocaleOrLanguage returns the most specific language tag the provider reported.
func (v Voice) LocaleOrLanguage() string {
	if strings.TrimSpace(v.Locale) != "" {
		return v.Locale
	}
	return v.Language
}

// Avatar is an entry of the provider avatar catalog.
type Avatar struct {
	AvatarID        string `json:"avatar_id"`
	AvatarName      string `json:"avatar_name"`
	Gender          string `json:"gender"`
	PreviewImageURL string `json:"preview_image_url"`
	PreviewVideoURL string `json:"preview_video_url"`
}

// VideoStatus is the payload of GET /v1/video_status.get.
type VideoStatus struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	VideoURL     string          `json:"video_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Duration     float64         `json:"duration"`
	CreatedAt    int64           `json:"created_at"`
	ErrorMessage string          `json:"error_message"`
	Error        json.RawMessage `json:"error"`
}

// FailureMessage returns the most descriptive error text present on a failed status.
func (s VideoStatus) FailureMessage() string {
	if s.ErrorMessage != "" {
		return s.ErrorMessage
	}
	if len(s.Error) == 0 {
		return ""
	}
	parsed := gjson.ParseBytes(s.Error)
	for _, path := range []string{"detail", "message"} {
		if v := parsed.Get(path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	if parsed.Type == gjson.String {
		return parsed.String()
	}
	return ""
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type voiceList struct {
	Voices []Voice `json:"voices"`
}

type avatarList struct {
	Avatars []Avatar `json:"avatars"`
}

type createResult struct {
	VideoID string `json:"video_id"`
}
