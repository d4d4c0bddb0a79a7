package services

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CacheWarmer re-populates the listing cache on a schedule so the first
// list after an invalidation does not always pay the full database fetch.
type CacheWarmer struct {
	store RecordStore
	cache ListCache
	cron  *cron.Cron
}

func NewCacheWarmer(store RecordStore, cache ListCache) *CacheWarmer {
	return &CacheWarmer{store: store, cache: cache, cron: cron.New()}
}

// Start registers the refresh job and starts the scheduler. An empty spec
// disables warming.
func (w *CacheWarmer) Start(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := w.cron.AddFunc(spec, w.Refresh); err != nil {
		return err
	}
	w.cron.Start()
	logrus.WithField("schedule", spec).Info("Cache warmer started")
	return nil
}

func (w *CacheWarmer) Stop() {
	w.cron.Stop()
}

// Refresh fetches the full listing and caches it. An empty listing is not
// cached; the miss path reports that case itself.
func (w *CacheWarmer) Refresh() {
	ctx := context.Background()
	services, err := w.store.ListAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Cache warm failed: could not fetch services")
		return
	}
	if len(services) == 0 {
		return
	}
	w.cache.Populate(ctx, services)
}
