package poller

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout matches every TimeoutError.
	ErrTimeout = errors.New("timed out waiting for video")
	// ErrCanceled is returned when a session is canceled or replaced.
	ErrCanceled = errors.New("polling canceled")
	// ErrUnknownJob reports a failed job without any detail from the provider.
	ErrUnknownJob = errors.New("video generation failed for an unknown reason")
	// ErrMissingVideoURL reports a completed job that carries no video.
	ErrMissingVideoURL = errors.New("job completed without a video url")
)

// JobFailedError carries the provider failure message of a failed job.
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	return "video generation failed: " + e.Message
}

// TimeoutError is returned when the attempt budget runs out before a terminal status.
type TimeoutError struct {
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %d attempts", ErrTimeout.Error(), e.Attempts)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
