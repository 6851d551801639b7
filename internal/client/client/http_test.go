package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mghilardi/vidlib/internal/client/models"
)

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func collectEvents(t *testing.T, events <-chan UploadEvent) []UploadEvent {
	t.Helper()
	var out []UploadEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(out))
		}
	}
}

func TestUpload_SendsMultipartFormAndCompletes(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", 64*1024)
	thumbPath := writeTempFile(t, "cover.png", 8*1024)

	var gotTitle, gotDescription, gotCategory, gotTags string
	var gotVideoName, gotThumbName string
	var gotVideoSize int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/videos", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotTitle = r.FormValue("title")
		gotDescription = r.FormValue("description")
		gotCategory = r.FormValue("category")
		gotTags = r.FormValue("tags")

		vf, vh, err := r.FormFile("videos")
		require.NoError(t, err)
		defer vf.Close()
		gotVideoName = vh.Filename
		gotVideoSize = vh.Size

		tf, th, err := r.FormFile("thumbnail")
		require.NoError(t, err)
		defer tf.Close()
		gotThumbName = th.Filename

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Video{ID: "srv-1", Title: gotTitle})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	events := c.Upload(context.Background(), UploadRequest{
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
		Metadata: models.VideoMetadata{
			Title:       "My clip",
			Description: "A description",
			Category:    "Music",
			Tags:        []string{"go", "video"},
		},
	})

	all := collectEvents(t, events)
	require.NotEmpty(t, all)

	last := all[len(all)-1]
	require.Equal(t, EventComplete, last.Type)
	require.NotNil(t, last.Video)
	assert.Equal(t, "srv-1", last.Video.ID)

	assert.Equal(t, "My clip", gotTitle)
	assert.Equal(t, "A description", gotDescription)
	assert.Equal(t, "Music", gotCategory)
	assert.JSONEq(t, `["go","video"]`, gotTags)
	assert.Equal(t, "clip.mp4", gotVideoName)
	assert.Equal(t, int64(64*1024), gotVideoSize)
	assert.Equal(t, "cover.png", gotThumbName)
}

func TestUpload_ProgressIsMonotonicAndEndsAt100(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", 256*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Video{ID: "srv-1"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	events := c.Upload(context.Background(), UploadRequest{VideoPath: videoPath})

	all := collectEvents(t, events)
	require.NotEmpty(t, all)
	require.Equal(t, EventComplete, all[len(all)-1].Type)

	var progress []int
	for _, ev := range all[:len(all)-1] {
		require.Equal(t, EventProgress, ev.Type)
		progress = append(progress, ev.Progress)
	}
	require.NotEmpty(t, progress)

	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestUpload_NilTagsSentAsEmptyList(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", 1024)

	var gotTags string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotTags = r.FormValue("tags")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Video{ID: "srv-1"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	all := collectEvents(t, c.Upload(context.Background(), UploadRequest{VideoPath: videoPath}))

	require.Equal(t, EventComplete, all[len(all)-1].Type)
	assert.Equal(t, "[]", gotTags)
}

func TestUpload_ServerErrorEmitsErrorEvent(t *testing.T) {
	videoPath := writeTempFile(t, "clip.mp4", 1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	all := collectEvents(t, c.Upload(context.Background(), UploadRequest{VideoPath: videoPath}))

	require.NotEmpty(t, all)
	last := all[len(all)-1]
	require.Equal(t, EventError, last.Type)
	assert.Contains(t, last.Err.Error(), "upload failed")
}

func TestUpload_MissingFileEmitsErrorEvent(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:0")
	all := collectEvents(t, c.Upload(context.Background(), UploadRequest{VideoPath: "/does/not/exist.mp4"}))

	require.Len(t, all, 1)
	require.Equal(t, EventError, all[0].Type)
	assert.Contains(t, all[0].Err.Error(), "open video")
}

func TestListVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/videos", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Video{{ID: "1"}, {ID: "2"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	videos, err := c.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)
}

func TestGetVideo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.GetVideo(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVideo_SendsPatchBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody models.VideoUpdate

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(models.Video{ID: "1", Title: *gotBody.Title})
	}))
	defer srv.Close()

	title := "renamed"
	c := NewHTTPClient(srv.URL)
	v, err := c.UpdateVideo(context.Background(), "1", models.VideoUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/videos/1", gotPath)
	require.NotNil(t, gotBody.Title)
	assert.Equal(t, "renamed", *gotBody.Title)
	assert.Equal(t, "renamed", v.Title)
}

func TestDeleteVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	require.NoError(t, c.DeleteVideo(context.Background(), "1"))
}

func TestPing_Unreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1")

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
