package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"portfolio-server/entities"
	"portfolio-server/schema"
)

type cachedSubmission struct {
	Contact entities.Contact
	SeenAt  time.Time
	// pending is open while the first submission is being stored.
	pending chan struct{}
}

// SubmissionCache remembers recent contact submissions so a retried form post
// inside the window returns the first contact instead of storing a duplicate.
type SubmissionCache struct {
	mu         sync.Mutex
	window     time.Duration
	now        func() time.Time
	recent     map[string]*cachedSubmission // fingerprint -> first contact
	duplicates int
	pruned     int
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Entries    int    `json:"entries"`
	Duplicates int    `json:"duplicates"`
	Pruned     int    `json:"pruned"`
	Window     string `json:"window"`
}

// NewSubmissionCache returns a cache with the given window. A zero window
// disables deduplication.
func NewSubmissionCache(window time.Duration) *SubmissionCache {
	return &SubmissionCache{
		window: window,
		now:    time.Now,
		recent: make(map[string]*cachedSubmission),
	}
}

// Fingerprint identifies a submission by its content. Case and surrounding
// whitespace are ignored.
func Fingerprint(in schema.InsertContact) string {
	h := sha256.New()
	for _, field := range []string{in.Name, in.Email, in.ProjectType, in.Message} {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(field))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Enabled reports whether deduplication is active.
func (c *SubmissionCache) Enabled() bool {
	return c.window > 0
}

// Claim looks up key and reserves it in one step. When a contact was stored
// for key inside the window it is returned with duplicate set. Otherwise the
// caller owns key and must follow up with Remember or Release. A caller that
// finds key reserved by another submission waits for that one to finish.
func (c *SubmissionCache) Claim(key string) (first entities.Contact, duplicate bool) {
	if !c.Enabled() {
		return entities.Contact{}, false
	}
	for {
		c.mu.Lock()
		entry, ok := c.recent[key]
		if ok && entry.pending != nil {
			wait := entry.pending
			c.mu.Unlock()
			<-wait
			continue
		}
		if ok && c.now().Sub(entry.SeenAt) <= c.window {
			c.duplicates++
			c.mu.Unlock()
			return entry.Contact, true
		}
		c.recent[key] = &cachedSubmission{pending: make(chan struct{})}
		c.mu.Unlock()
		return entities.Contact{}, false
	}
}

// Remember records contact under key and wakes anyone waiting on a claim.
func (c *SubmissionCache) Remember(key string, contact entities.Contact) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.recent[key]
	if ok && entry.pending != nil {
		close(entry.pending)
	}
	c.recent[key] = &cachedSubmission{Contact: contact, SeenAt: c.now()}
}

// Release drops a claim whose submission was not stored.
func (c *SubmissionCache) Release(key string) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.recent[key]
	if ok && entry.pending != nil {
		close(entry.pending)
		delete(c.recent, key)
	}
}

// Prune drops entries older than the window and returns how many went.
// Claims still in flight are kept.
func (c *SubmissionCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.recent {
		if entry.pending == nil && now.Sub(entry.SeenAt) > c.window {
			delete(c.recent, key)
			removed++
		}
	}
	c.pruned += removed
	return removed
}

// Stats returns the current counters.
func (c *SubmissionCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:    len(c.recent),
		Duplicates: c.duplicates,
		Pruned:     c.pruned,
		Window:     c.window.String(),
	}
}
