package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/pkg/upload"
)

// minFileAge keeps freshly staged uploads out of the sweep; a submission
// may still be in flight when the job runs.
const minFileAge = 24 * time.Hour

// SweepService removes uploaded files that no declaration references,
// on a daily cron schedule. Failed submissions already clean up after
// themselves; this catches whatever slipped through.
type SweepService struct {
	declRepo repositories.DeclarationRepository
	store    *upload.Store
	cron     *cron.Cron
}

// NewSweepService creates a new sweep service
func NewSweepService(declRepo repositories.DeclarationRepository, store *upload.Store) *SweepService {
	return &SweepService{
		declRepo: declRepo,
		store:    store,
		cron:     cron.New(),
	}
}

// Start schedules the daily sweep (03:30).
func (s *SweepService) Start() {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("⚠️ Upload sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("⚠️ Failed to schedule upload sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Upload sweep scheduled (daily 03:30)")
}

// Stop stops the cron scheduler
func (s *SweepService) Stop() {
	s.cron.Stop()
}

// Sweep deletes stale unreferenced uploads. Individual removal failures
// are logged and skipped; the sweep never retries.
func (s *SweepService) Sweep(ctx context.Context) error {
	stale, err := s.store.StaleFiles(minFileAge)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	referenced, err := s.declRepo.ReferencedUploadURLs(ctx)
	if err != nil {
		return err
	}

	removed := 0
	for _, urlPath := range stale {
		if referenced[urlPath] {
			continue
		}
		if err := s.store.Remove(urlPath); err != nil {
			log.Printf("⚠️ Failed to remove orphaned upload %s: %v", urlPath, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("🧹 Upload sweep removed %d orphaned file(s)", removed)
	}
	return nil
}
