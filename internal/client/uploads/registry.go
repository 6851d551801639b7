// Package uploads tracks in-flight video uploads: the registry of upload
// records, the orchestrator that drives each upload end to end, and the
// navigation guard that blocks leaving while uploads are active.
package uploads

import (
	"sort"
	"sync"
	"time"

	"github.com/mghilardi/vidlib/internal/client/models"
)

// RecordUpdate is a partial change to an upload record. Nil fields are left
// untouched.
type RecordUpdate struct {
	ServerID     *string
	Status       *models.UploadStatus
	Progress     *int
	ErrorMessage *string
}

// Registry is the in-memory store of upload records keyed by tempId, and the
// sole mutation point for upload state. Every mutation replaces the backing
// map wholesale, so snapshots handed out earlier are never affected, and all
// derived counts are recomputed from the current map contents.
type Registry struct {
	mu      sync.Mutex
	records map[string]models.UploadRecord
	subs    []func()
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]models.UploadRecord),
		now:     time.Now,
	}
}

// Subscribe registers fn to run after every mutation that changed state.
// Subscribers must not call back into the registry.
func (r *Registry) Subscribe(fn func()) {
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// Add inserts a fresh record in the uploading state with zero progress.
// It is a no-op returning false when tempID already exists; callers must
// guarantee uniqueness.
func (r *Registry) Add(tempID, fileName, title string) bool {
	r.mu.Lock()
	if _, ok := r.records[tempID]; ok {
		r.mu.Unlock()
		return false
	}
	next := r.cloneLocked()
	next[tempID] = models.UploadRecord{
		TempID:    tempID,
		FileName:  fileName,
		Title:     title,
		Status:    models.UploadStatusUploading,
		StartTime: r.now(),
	}
	r.records = next
	subs := r.subs
	r.mu.Unlock()

	notify(subs)
	return true
}

// Update merges the given fields into the record. Updating an absent tempID
// is a silent no-op returning false; a record is never synthesized.
func (r *Registry) Update(tempID string, update RecordUpdate) bool {
	r.mu.Lock()
	rec, ok := r.records[tempID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if update.ServerID != nil {
		rec.ServerID = *update.ServerID
	}
	if update.Status != nil {
		rec.Status = *update.Status
	}
	if update.Progress != nil {
		rec.Progress = *update.Progress
	}
	if update.ErrorMessage != nil {
		rec.ErrorMessage = *update.ErrorMessage
	}
	next := r.cloneLocked()
	next[tempID] = rec
	r.records = next
	subs := r.subs
	r.mu.Unlock()

	notify(subs)
	return true
}

// Remove deletes the record; removing a missing id is a no-op.
func (r *Registry) Remove(tempID string) {
	r.mu.Lock()
	if _, ok := r.records[tempID]; !ok {
		r.mu.Unlock()
		return
	}
	next := r.cloneLocked()
	delete(next, tempID)
	r.records = next
	subs := r.subs
	r.mu.Unlock()

	notify(subs)
}

// ClearFinished drops uploaded and errored records in one pass, keeping only
// those still uploading.
func (r *Registry) ClearFinished() {
	r.mu.Lock()
	next := make(map[string]models.UploadRecord, len(r.records))
	for id, rec := range r.records {
		if rec.Status == models.UploadStatusUploading {
			next[id] = rec
		}
	}
	changed := len(next) != len(r.records)
	r.records = next
	subs := r.subs
	r.mu.Unlock()

	if changed {
		notify(subs)
	}
}

// ClearAll empties the registry unconditionally.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	changed := len(r.records) > 0
	r.records = make(map[string]models.UploadRecord)
	subs := r.subs
	r.mu.Unlock()

	if changed {
		notify(subs)
	}
}

// Get returns the record for tempID.
func (r *Registry) Get(tempID string) (models.UploadRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[tempID]
	return rec, ok
}

// Snapshot returns all records ordered by start time (ties broken by tempId).
func (r *Registry) Snapshot() []models.UploadRecord {
	r.mu.Lock()
	records := r.records
	r.mu.Unlock()

	out := make([]models.UploadRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].TempID < out[j].TempID
	})
	return out
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Registry) CountByStatus(status models.UploadStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// UploadingCount is the number of records still in flight.
func (r *Registry) UploadingCount() int {
	return r.CountByStatus(models.UploadStatusUploading)
}

// HasActiveUploads reports whether any record is still uploading.
func (r *Registry) HasActiveUploads() bool {
	return r.UploadingCount() > 0
}

func (r *Registry) cloneLocked() map[string]models.UploadRecord {
	next := make(map[string]models.UploadRecord, len(r.records)+1)
	for id, rec := range r.records {
		next[id] = rec
	}
	return next
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
