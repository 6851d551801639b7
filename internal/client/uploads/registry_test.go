package uploads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mghilardi/vidlib/internal/client/models"
)

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Add("temp_1", "clip.mp4", "My clip"))

	rec, ok := r.Get("temp_1")
	require.True(t, ok)
	assert.Equal(t, "temp_1", rec.TempID)
	assert.Equal(t, "clip.mp4", rec.FileName)
	assert.Equal(t, "My clip", rec.Title)
	assert.Equal(t, models.UploadStatusUploading, rec.Status)
	assert.Equal(t, 0, rec.Progress)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_AddDuplicateIsNoop(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Add("temp_1", "clip.mp4", "first"))
	require.False(t, r.Add("temp_1", "other.mp4", "second"))

	rec, _ := r.Get("temp_1")
	assert.Equal(t, "first", rec.Title)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_UpdateAbsentIsNoop(t *testing.T) {
	r := NewRegistry()

	progress := 50
	require.False(t, r.Update("missing", RecordUpdate{Progress: &progress}))
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_UpdateMergesFields(t *testing.T) {
	r := NewRegistry()
	r.Add("temp_1", "clip.mp4", "My clip")

	progress := 42
	require.True(t, r.Update("temp_1", RecordUpdate{Progress: &progress}))

	rec, _ := r.Get("temp_1")
	assert.Equal(t, 42, rec.Progress)
	assert.Equal(t, models.UploadStatusUploading, rec.Status)

	serverID := "srv-1"
	status := models.UploadStatusUploaded
	progress = 100
	require.True(t, r.Update("temp_1", RecordUpdate{
		ServerID: &serverID,
		Status:   &status,
		Progress: &progress,
	}))

	rec, _ = r.Get("temp_1")
	assert.Equal(t, "srv-1", rec.ServerID)
	assert.Equal(t, models.UploadStatusUploaded, rec.Status)
	assert.Equal(t, 100, rec.Progress)
}

func TestRegistry_RemoveRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Add("temp_1", "clip.mp4", "My clip")

	r.Remove("temp_1")
	_, ok := r.Get("temp_1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())

	// removing again is harmless
	r.Remove("temp_1")
}

func TestRegistry_SnapshotIsIsolatedFromMutations(t *testing.T) {
	r := NewRegistry()
	r.Add("temp_1", "clip.mp4", "My clip")

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 0, snap[0].Progress)

	progress := 80
	r.Update("temp_1", RecordUpdate{Progress: &progress})

	// the earlier snapshot still shows the old state
	assert.Equal(t, 0, snap[0].Progress)

	snap2 := r.Snapshot()
	assert.Equal(t, 80, snap2[0].Progress)
}

func TestRegistry_SnapshotOrderedByStartTime(t *testing.T) {
	r := NewRegistry()
	base := time.Now()
	times := []time.Time{base.Add(2 * time.Second), base, base.Add(time.Second)}
	i := 0
	r.now = func() time.Time { t := times[i]; i++; return t }

	r.Add("temp_c", "c.mp4", "c")
	r.Add("temp_a", "a.mp4", "a")
	r.Add("temp_b", "b.mp4", "b")

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "temp_a", snap[0].TempID)
	assert.Equal(t, "temp_b", snap[1].TempID)
	assert.Equal(t, "temp_c", snap[2].TempID)
}

func TestRegistry_ClearFinishedKeepsUploading(t *testing.T) {
	r := NewRegistry()
	r.Add("temp_1", "a.mp4", "a")
	r.Add("temp_2", "b.mp4", "b")
	r.Add("temp_3", "c.mp4", "c")

	uploaded := models.UploadStatusUploaded
	failed := models.UploadStatusError
	r.Update("temp_1", RecordUpdate{Status: &uploaded})
	r.Update("temp_2", RecordUpdate{Status: &failed})

	r.ClearFinished()

	assert.Equal(t, 1, r.Count())
	_, ok := r.Get("temp_3")
	assert.True(t, ok)
}

func TestRegistry_Counts(t *testing.T) {
	r := NewRegistry()
	r.Add("temp_1", "a.mp4", "a")
	r.Add("temp_2", "b.mp4", "b")

	assert.Equal(t, 2, r.UploadingCount())
	assert.True(t, r.HasActiveUploads())

	uploaded := models.UploadStatusUploaded
	r.Update("temp_1", RecordUpdate{Status: &uploaded})

	assert.Equal(t, 1, r.UploadingCount())
	assert.Equal(t, 1, r.CountByStatus(models.UploadStatusUploaded))

	r.ClearAll()
	assert.False(t, r.HasActiveUploads())
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_SubscribersNotifiedPerMutation(t *testing.T) {
	r := NewRegistry()

	calls := 0
	r.Subscribe(func() { calls++ })

	r.Add("temp_1", "a.mp4", "a")
	progress := 10
	r.Update("temp_1", RecordUpdate{Progress: &progress})
	r.Remove("temp_1")

	assert.Equal(t, 3, calls)

	// no-op mutations do not notify
	r.Remove("temp_1")
	r.ClearFinished()
	r.ClearAll()
	assert.Equal(t, 3, calls)
}
