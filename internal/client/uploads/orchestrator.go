package uploads

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mghilardi/vidlib/internal/client/catalog"
	"github.com/mghilardi/vidlib/internal/client/client"
	"github.com/mghilardi/vidlib/internal/client/models"
	"github.com/mghilardi/vidlib/internal/logging"
)

// Notifier surfaces user-facing messages (the CLI prints them).
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Task is the handle for one background upload. The result is observed
// independently of any UI lifecycle: closing a dialog never cancels the
// transfer.
type Task struct {
	TempID string

	done  chan struct{}
	video *models.Video
	err   error
}

// Done is closed once the upload reached a terminal state.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the created video or the transport error. It must only be
// read after Done is closed.
func (t *Task) Result() (*models.Video, error) { return t.video, t.err }

// Wait blocks until the upload finishes or ctx is cancelled. Cancelling the
// wait does not cancel the transfer.
func (t *Task) Wait(ctx context.Context) (*models.Video, error) {
	select {
	case <-t.done:
		return t.video, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Orchestrator drives uploads end to end: it registers each upload in the
// registry, feeds transport progress into it, reconciles the server id on
// completion and publishes the finished video into the catalog.
//
// StartUpload may be called any number of times concurrently; every call gets
// its own tempId and its event stream only ever touches its own record.
type Orchestrator struct {
	client   client.Client
	registry *Registry
	catalog  *catalog.Catalog
	notifier Notifier
	log      logging.Logger

	// removeDelay is how long a completed record stays visible before it is
	// dropped from the registry.
	removeDelay time.Duration
}

const defaultRemoveDelay = 2 * time.Second

func NewOrchestrator(c client.Client, registry *Registry, cat *catalog.Catalog, notifier Notifier, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		client:      c,
		registry:    registry,
		catalog:     cat,
		notifier:    notifier,
		log:         log,
		removeDelay: defaultRemoveDelay,
	}
}

// StartUpload registers the upload and begins the transfer in the
// background, returning immediately with the task handle.
func (o *Orchestrator) StartUpload(ctx context.Context, videoPath, thumbnailPath string, metadata models.VideoMetadata) *Task {
	tempID := newTempID()
	o.registry.Add(tempID, filepath.Base(videoPath), metadata.Title)

	task := &Task{TempID: tempID, done: make(chan struct{})}

	events := o.client.Upload(ctx, client.UploadRequest{
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
		Metadata:      metadata,
	})

	go o.track(ctx, tempID, events, task)

	return task
}

// track consumes the event stream for one upload. Progress values are passed
// through to the registry verbatim; the terminal event is the last mutation
// this call chain performs on the record.
func (o *Orchestrator) track(ctx context.Context, tempID string, events <-chan client.UploadEvent, task *Task) {
	for ev := range events {
		switch ev.Type {
		case client.EventProgress:
			progress := ev.Progress
			o.registry.Update(tempID, RecordUpdate{Progress: &progress})

		case client.EventComplete:
			o.complete(ctx, tempID, ev.Video, task)
			return

		case client.EventError:
			o.failed(ctx, tempID, ev.Err, task)
			return
		}
	}

	// The stream ended without a terminal event; treat it as a failure so
	// the record cannot stay in the uploading state forever.
	o.failed(ctx, tempID, fmt.Errorf("upload stream ended unexpectedly"), task)
}

func (o *Orchestrator) complete(ctx context.Context, tempID string, video *models.Video, task *Task) {
	serverID := video.ID
	status := models.UploadStatusUploaded
	progress := 100
	o.registry.Update(tempID, RecordUpdate{
		ServerID: &serverID,
		Status:   &status,
		Progress: &progress,
	})

	o.catalog.Prepend(*video)

	o.log.Info(ctx, "upload completed", "tempId", tempID, "id", video.ID, "title", video.Title)

	task.video = video
	close(task.done)

	// Keep the finished entry visible briefly, then drop it.
	time.AfterFunc(o.removeDelay, func() {
		o.registry.Remove(tempID)
	})
}

func (o *Orchestrator) failed(ctx context.Context, tempID string, cause error, task *Task) {
	msg := "Error during upload"
	if cause != nil {
		msg = cause.Error()
	}
	status := models.UploadStatusError
	o.registry.Update(tempID, RecordUpdate{
		Status:       &status,
		ErrorMessage: &msg,
	})

	o.log.Error(ctx, "upload failed", "tempId", tempID, "error", msg)
	o.notifier.Notify("Error during upload")

	// The errored record is kept until dismissed; only the task rejects.
	task.err = cause
	close(task.done)
}

// newTempID builds a registry key unique for the client's lifetime: a
// monotonically increasing timestamp plus a random suffix.
func newTempID() string {
	return fmt.Sprintf("temp_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
