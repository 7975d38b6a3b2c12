package app

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/khrees2412/jobscout/internal/config"
)

// ScrapeLock guards against two scrapes driving browsers at once
type ScrapeLock struct {
	fl *flock.Flock
}

// AcquireScrapeLock takes the lock file in dir without blocking. It returns
// ErrScrapeInProgress when another process holds it.
func AcquireScrapeLock(dir string) (*ScrapeLock, error) {
	if dir == "" {
		dir = config.Dir()
	}
	fl := flock.New(filepath.Join(dir, "scrape.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, ErrScrapeInProgress
	}
	return &ScrapeLock{fl: fl}, nil
}

// Release unlocks the file
func (l *ScrapeLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
