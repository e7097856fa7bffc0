package generation

import (
	"errors"

	"github.com/M1DES1/aigenimgtovid/internal/client"
	"github.com/M1DES1/aigenimgtovid/internal/poller"
)

var (
	// ErrBusy is returned while another generation is in flight.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrImageRequired is returned when the controller requires an attached image.
	ErrImageRequired = errors.New("an image is required")
	// ErrNotImage rejects attachments that are not images.
	ErrNotImage = errors.New("file is not an image")
	// ErrImageTooLarge rejects attachments above MaxImageSize.
	ErrImageTooLarge = errors.New("image is too large")
)

// FlowError is the single user-facing failure of a generation attempt.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	return e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func flowError(err error) *FlowError {
	return &FlowError{Message: userMessage(err), Err: err}
}

func userMessage(err error) string {
	var (
		vErr       *client.ValidationError
		gwErr      *client.GatewayError
		connErr    *client.ConnectivityError
		failedErr  *poller.JobFailedError
		timeoutErr *poller.TimeoutError
	)

	switch {
	case errors.Is(err, ErrBusy):
		return "A video is already being generated. Please wait for it to finish."
	case errors.Is(err, ErrImageRequired):
		return "Please attach an image first."
	case errors.Is(err, ErrNotImage):
		return "Please choose an image file (JPG, PNG, GIF)."
	case errors.Is(err, ErrImageTooLarge):
		return "The image is too large. The maximum size is 5 MB."
	case errors.As(err, &vErr):
		return "Please enter a prompt describing the video."
	case errors.As(err, &connErr):
		return "Cannot reach the server. Check your connection and try again."
	case errors.As(err, &gwErr):
		return "Server error: " + gwErr.Message
	case errors.As(err, &timeoutErr):
		return "Video generation is taking too long. Please try again later."
	case errors.As(err, &failedErr):
		return "Video generation failed: " + failedErr.Message
	case errors.Is(err, poller.ErrUnknownJob):
		return "Video generation failed for an unknown reason."
	case errors.Is(err, poller.ErrMissingVideoURL):
		return "The server reported success but returned no video."
	case errors.Is(err, poller.ErrCanceled):
		return "Video generation was canceled."
	default:
		return "Something went wrong while generating the video. Please try again."
	}
}
