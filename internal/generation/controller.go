package generation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/M1DES1/aigenimgtovid/internal/client"
	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
	"github.com/M1DES1/aigenimgtovid/internal/poller"
)

// MaxImageSize is the largest accepted attachment.
const MaxImageSize = 5 << 20

// Submitter posts generation requests to the gateway.
type Submitter interface {
	Submit(ctx context.Context, req models.GenerationRequest) (client.JobHandle, error)
}

// JobPoller runs poll sessions. Starting one cancels the previous one.
type JobPoller interface {
	Poll(ctx context.Context, jobID string, onUpdate func(poller.Update)) *poller.Session
	Cancel()
}

// Progress is reported while a generation runs.
type Progress struct {
	Percent int
	Message string
}

// Image is an attachment held by the session.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form carries the user inputs of one generation.
type Form struct {
	Prompt       string
	Style        string
	Motion       int
	Dimension    models.Dimension
	AvatarID     string
	VoiceID      string
	IncludeVoice *bool
}

// Options configures a Controller.
type Options struct {
	RequireImage    bool
	HistoryCapacity int
	OnProgress      func(Progress)
	Now             func() time.Time
}

// Session is the state owned by one controller: the attachment, the job in flight and
// the history.
type Session struct {
	Image   *Image
	Current *models.Job
	Busy    bool
	History *History
}

// Controller drives submit, poll and history for one user session.
type Controller struct {
	submitter Submitter
	poller    JobPoller
	opts      Options

	mu      sync.Mutex
	session Session
}

// NewController constructs a controller with an empty session.
func NewController(submitter Submitter, jobPoller JobPoller, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		submitter: submitter,
		poller:    jobPoller,
		opts:      opts,
		session:   Session{History: NewHistory(opts.HistoryCapacity)},
	}
}

// AttachImage stores an image attachment and returns a prompt suggested from its name.
func (c *Controller) AttachImage(name, contentType string, data []byte) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return "", flowError(ErrNotImage)
	}
	if len(data) > MaxImageSize {
		return "", flowError(ErrImageTooLarge)
	}

	c.mu.Lock()
	c.session.Image = &Image{Name: name, ContentType: contentType, Data: data}
	c.mu.Unlock()

	return SuggestPrompt(name), nil
}

// Generate submits the form, polls until a terminal state and records the result.
// Every failure is returned as a *FlowError.
func (c *Controller) Generate(ctx context.Context, form Form) (models.GenerationRecord, error) {
	prompt := strings.TrimSpace(form.Prompt)

	c.mu.Lock()
	switch {
	case c.session.Busy:
		c.mu.Unlock()
		return models.GenerationRecord{}, flowError(ErrBusy)
	case prompt == "":
		c.mu.Unlock()
		return models.GenerationRecord{}, flowError(&client.ValidationError{Field: "prompt", Message: "prompt is required"})
	case c.opts.RequireImage && c.session.Image == nil:
		c.mu.Unlock()
		return models.GenerationRecord{}, flowError(ErrImageRequired)
	}
	c.session.Busy = true
	c.session.Current = nil
	hasImage := c.session.Image != nil
	c.mu.Unlock()

	c.poller.Cancel()

	ctx, span := logging.StartSpan(ctx, "generation.generate")
	defer span.End()

	record, err := c.run(ctx, form, prompt, hasImage)

	c.mu.Lock()
	c.session.Busy = false
	c.mu.Unlock()

	if err != nil {
		c.poller.Cancel()
		span.Fail(err)
		return models.GenerationRecord{}, flowError(err)
	}
	return record, nil
}

func (c *Controller) run(ctx context.Context, form Form, prompt string, hasImage bool) (models.GenerationRecord, error) {
	logger := logging.FromContext(ctx)

	if hasImage {
		c.report(10, "Uploading image...")
	}
	c.report(30, "Preparing prompt...")
	enriched := EnrichPrompt(prompt, form.Style, form.Motion)

	handle, err := c.submitter.Submit(ctx, models.GenerationRequest{
		Prompt:       enriched,
		AvatarID:     form.AvatarID,
		VoiceID:      form.VoiceID,
		Dimension:    form.Dimension,
		Style:        form.Style,
		IncludeVoice: form.IncludeVoice,
	})
	if err != nil {
		return models.GenerationRecord{}, err
	}
	logger.Info("generation submitted", "jobId", handle.JobID)

	c.setCurrent(models.Job{JobID: handle.JobID, Status: handle.Status, VideoURL: handle.VideoURL, ThumbnailURL: handle.ThumbnailURL})
	c.report(40, "Video generation started...")

	session := c.poller.Poll(ctx, handle.JobID, func(u poller.Update) {
		c.setCurrent(u.Job)
		if u.State == poller.StateProcessing {
			c.report(u.Progress, u.Message)
		}
	})
	job, err := session.Wait(ctx)
	if err != nil {
		return models.GenerationRecord{}, err
	}

	record := models.GenerationRecord{
		ID:              uuid.NewString(),
		PromptExcerpt:   models.PromptExcerpt(prompt),
		DurationSeconds: job.Duration,
		StyleLabel:      StyleLabel(form.Style),
		CreatedAt:       c.opts.Now(),
		VideoURL:        models.Deref(job.VideoURL),
		ThumbnailURL:    models.Deref(job.ThumbnailURL),
	}
	c.session.History.Add(record)
	c.report(100, "Video ready!")
	return record, nil
}

// Cancel stops the active poll, as when the user navigates away.
func (c *Controller) Cancel() {
	c.poller.Cancel()
}

// Reset clears the attachment and the current job. History is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Image = nil
	c.session.Current = nil
}

// History returns the recorded generations, most recent first.
func (c *Controller) History() []models.GenerationRecord {
	return c.session.History.List()
}

// Current returns the latest snapshot of the job in flight.
func (c *Controller) Current() (models.Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Current == nil {
		return models.Job{}, false
	}
	return *c.session.Current, true
}

// Busy reports whether a generation is running.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Busy
}

func (c *Controller) setCurrent(job models.Job) {
	c.mu.Lock()
	c.session.Current = &job
	c.mu.Unlock()
}

func (c *Controller) report(percent int, message string) {
	if c.opts.OnProgress != nil {
		c.opts.OnProgress(Progress{Percent: percent, Message: message})
	}
}
