package services

import (
	"sync"
	"time"

	"portfolio-server/cache"

	"github.com/rs/zerolog/log"
)

// CacheJanitor prunes expired contact submissions on a fixed interval.
type CacheJanitor struct {
	cache    *cache.SubmissionCache
	interval time.Duration

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewCacheJanitor(c *cache.SubmissionCache, interval time.Duration) *CacheJanitor {
	return &CacheJanitor{
		cache:    c,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (j *CacheJanitor) Start() {
	ticker := time.NewTicker(j.interval)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-j.stop:
				return
			}
		}
	}()
}

// Sweep prunes the cache once and returns the number of entries removed.
func (j *CacheJanitor) Sweep() int {
	removed := j.cache.Prune()
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("pruned contact submission cache")
	}
	return removed
}

// Stop ends the sweep loop and waits for it to exit. Safe to call twice.
func (j *CacheJanitor) Stop() {
	j.once.Do(func() { close(j.stop) })
	j.wg.Wait()
}

// Stats reports the counters of the swept cache.
func (j *CacheJanitor) Stats() cache.Stats {
	return j.cache.Stats()
}

// Cache returns the swept cache.
func (j *CacheJanitor) Cache() *cache.SubmissionCache {
	return j.cache
}
