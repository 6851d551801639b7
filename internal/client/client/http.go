package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mghilardi/vidlib/internal/client/models"
)

// HTTPClient implements Client against the catalog REST API.
//
// Uploads stream the multipart body through an io.Pipe so large files are
// never buffered in memory; progress percentages are derived from the bytes
// fed into the body, rounded, and emitted only when the value grows.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL,
// e.g. "http://127.0.0.1:3070". No request timeout is set because upload
// duration is unbounded; cancel via context instead.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *HTTPClient) Upload(ctx context.Context, req UploadRequest) <-chan UploadEvent {
	events := make(chan UploadEvent)
	go c.upload(ctx, req, events)
	return events
}

func (c *HTTPClient) upload(ctx context.Context, req UploadRequest, events chan<- UploadEvent) {
	defer close(events)

	send := func(ev UploadEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}
	fail := func(err error) { send(UploadEvent{Type: EventError, Err: err}) }

	video, err := os.Open(req.VideoPath)
	if err != nil {
		fail(fmt.Errorf("open video: %w", err))
		return
	}
	defer video.Close()

	videoInfo, err := video.Stat()
	if err != nil {
		fail(fmt.Errorf("stat video: %w", err))
		return
	}
	total := videoInfo.Size()

	var thumbnail *os.File
	if req.ThumbnailPath != "" {
		thumbnail, err = os.Open(req.ThumbnailPath)
		if err != nil {
			fail(fmt.Errorf("open thumbnail: %w", err))
			return
		}
		defer thumbnail.Close()

		thumbInfo, err := thumbnail.Stat()
		if err != nil {
			fail(fmt.Errorf("stat thumbnail: %w", err))
			return
		}
		total += thumbInfo.Size()
	}

	tracker := &progressTracker{
		total: total,
		emit: func(pct int) {
			send(UploadEvent{Type: EventProgress, Progress: pct})
		},
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		pw.CloseWithError(writeUploadForm(form, req, video, thumbnail, tracker))
	}()

	// The writer goroutine is the only progress emitter; it must be finished
	// before a terminal event is sent and the channel is closed. Do always
	// closes the request body, which unblocks any pending pipe write.
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/videos", pr)
	if err != nil {
		pr.Close()
		<-writeDone
		fail(err)
		return
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	<-writeDone
	if err != nil {
		fail(fmt.Errorf("%w: %v", ErrUnavailable, err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		fail(fmt.Errorf("upload failed: %s: %s", resp.Status, strings.TrimSpace(string(body))))
		return
	}

	var v models.Video
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		fail(fmt.Errorf("decode upload response: %w", err))
		return
	}

	send(UploadEvent{Type: EventComplete, Video: &v})
}

// writeUploadForm streams the metadata fields and file parts into the
// multipart writer. File bytes pass through the tracker on the way.
func writeUploadForm(form *multipart.Writer, req UploadRequest, video, thumbnail *os.File, tracker *progressTracker) error {
	tags := req.Metadata.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	fields := map[string]string{
		"title":       req.Metadata.Title,
		"description": req.Metadata.Description,
		"category":    req.Metadata.Category,
		"tags":        string(tagsJSON),
	}
	for _, name := range []string{"title", "description", "category", "tags"} {
		if err := form.WriteField(name, fields[name]); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	part, err := form.CreateFormFile("videos", filepath.Base(req.VideoPath))
	if err != nil {
		return fmt.Errorf("create video part: %w", err)
	}
	if _, err := io.Copy(part, io.TeeReader(video, tracker)); err != nil {
		return fmt.Errorf("copy video: %w", err)
	}

	if thumbnail != nil {
		part, err := form.CreateFormFile("thumbnail", filepath.Base(req.ThumbnailPath))
		if err != nil {
			return fmt.Errorf("create thumbnail part: %w", err)
		}
		if _, err := io.Copy(part, io.TeeReader(thumbnail, tracker)); err != nil {
			return fmt.Errorf("copy thumbnail: %w", err)
		}
	}

	return form.Close()
}

// progressTracker turns a byte count into rounded percentages, emitting each
// value at most once and never going backwards.
type progressTracker struct {
	total int64
	sent  int64
	last  int
	emit  func(pct int)
}

func (t *progressTracker) Write(p []byte) (int, error) {
	t.sent += int64(len(p))
	if t.total <= 0 {
		return len(p), nil
	}
	pct := int(math.Round(100 * float64(t.sent) / float64(t.total)))
	if pct > 100 {
		pct = 100
	}
	if pct > t.last {
		t.last = pct
		t.emit(pct)
	}
	return len(p), nil
}

func (c *HTTPClient) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := c.doJSON(ctx, http.MethodGet, "/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *HTTPClient) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	if err := c.doJSON(ctx, http.MethodGet, "/videos/"+id, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) UpdateVideo(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error) {
	var v models.Video
	if err := c.doJSON(ctx, http.MethodPatch, "/videos/"+id, update, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) DeleteVideo(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/videos/"+id, nil, nil)
}

// doJSON performs a JSON request/response exchange and maps common failures
// onto the package sentinels.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
