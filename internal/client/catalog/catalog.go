// Package catalog keeps the in-memory list of videos known to the client.
// Mutations replace the backing slice wholesale so readers always observe a
// complete snapshot; subscribers are invoked after every change.
package catalog

import (
	"sync"

	"github.com/mghilardi/vidlib/internal/client/models"
)

type Catalog struct {
	mu     sync.Mutex
	videos []models.Video
	subs   []func()
}

func New() *Catalog {
	return &Catalog{}
}

// Subscribe registers fn to run after every mutation. Subscribers must not
// call back into the catalog.
func (c *Catalog) Subscribe(fn func()) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Prepend inserts v at the front of the list (newest first).
func (c *Catalog) Prepend(v models.Video) {
	c.mu.Lock()
	next := make([]models.Video, 0, len(c.videos)+1)
	next = append(next, v)
	next = append(next, c.videos...)
	c.videos = next
	subs := c.subs
	c.mu.Unlock()

	notify(subs)
}

// Replace swaps the whole list, e.g. after loading from the server.
func (c *Catalog) Replace(videos []models.Video) {
	next := make([]models.Video, len(videos))
	copy(next, videos)

	c.mu.Lock()
	c.videos = next
	subs := c.subs
	c.mu.Unlock()

	notify(subs)
}

// ApplyUpdate replaces the entry with v's id. Returns false when no entry
// matches.
func (c *Catalog) ApplyUpdate(v models.Video) bool {
	c.mu.Lock()
	idx := -1
	for i := range c.videos {
		if c.videos[i].ID == v.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return false
	}
	next := make([]models.Video, len(c.videos))
	copy(next, c.videos)
	next[idx] = v
	c.videos = next
	subs := c.subs
	c.mu.Unlock()

	notify(subs)
	return true
}

// RemoveByID drops the entry with the given id; removing an unknown id is a
// no-op.
func (c *Catalog) RemoveByID(id string) bool {
	c.mu.Lock()
	next := make([]models.Video, 0, len(c.videos))
	removed := false
	for _, v := range c.videos {
		if v.ID == id {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		c.mu.Unlock()
		return false
	}
	c.videos = next
	subs := c.subs
	c.mu.Unlock()

	notify(subs)
	return true
}

// Videos returns the current snapshot.
func (c *Catalog) Videos() []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Video, len(c.videos))
	copy(out, c.videos)
	return out
}

func (c *Catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.videos)
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(c.videos))
	var out []string
	for _, v := range c.videos {
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		out = append(out, v.Category)
	}
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
