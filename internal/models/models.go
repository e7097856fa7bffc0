package models

import (
	"strings"
	"time"
)

// Dimension names one of the fixed output frame presets.
type Dimension string

const (
	DimensionPortrait  Dimension = "portrait"
	DimensionSquare    Dimension = "square"
	DimensionLandscape Dimension = "landscape"
)

// ParseDimension normalizes a preset name. Unknown or empty values yield portrait.
func ParseDimension(value string) Dimension {
	switch Dimension(strings.ToLower(strings.TrimSpace(value))) {
	case DimensionSquare:
		return DimensionSquare
	case DimensionLandscape:
		return DimensionLandscape
	default:
		return DimensionPortrait
	}
}

// GenerationRequest is the immutable payload submitted for a single video generation.
type GenerationRequest struct {
	Prompt       string    `json:"prompt"`
	AvatarID     string    `json:"avatarId,omitempty"`
	VoiceID      string    `json:"voiceId,omitempty"`
	Dimension    Dimension `json:"dimension,omitempty"`
	Style        string    `json:"style,omitempty"`
	IncludeVoice *bool     `json:"includeVoice,omitempty"`
}

// WantsVoice reports whether the request asks for narrated output. Absent means yes.
func (r GenerationRequest) WantsVoice() bool {
	return r.IncludeVoice == nil || *r.IncludeVoice
}

// JobStatus is the provider-reported lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ParseJobStatus maps provider status strings onto the closed JobStatus set.
func ParseJobStatus(value string) JobStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending", "waiting", "queued", "":
		return JobStatusPending
	case "completed", "succeeded", "success":
		return JobStatusCompleted
	case "failed", "error":
		return JobStatusFailed
	default:
		return JobStatusProcessing
	}
}

// IsTerminal returns true once no further transition can occur.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job is a read-only snapshot of a provider job as relayed by the gateway.
type Job struct {
	JobID        string    `json:"jobId"`
	Status       JobStatus `json:"status"`
	VideoURL     *string   `json:"videoUrl,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	CreatedAt    int64     `json:"createdAt,omitempty"`
}

// GenerationRecord is a history entry created when a job completes.
type GenerationRecord struct {
	ID              string
	PromptExcerpt   string
	DurationSeconds float64
	StyleLabel      string
	CreatedAt       time.Time
	VideoURL        string
	ThumbnailURL    string
}

const promptExcerptLength = 40

// PromptExcerpt shortens a prompt for display in the history list.
func PromptExcerpt(prompt string) string {
	runes := []rune(strings.TrimSpace(prompt))
	if len(runes) <= promptExcerptLength {
		return string(runes)
	}
	return string(runes[:promptExcerptLength]) + "..."
}

// StringPtr returns nil for empty strings so optional URLs stay null on the wire.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Deref returns the pointed-to string or "".
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
