package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/eyramt/examhall/internal/session"
)

// Sweeper periodically evicts expired session scratch entries so abandoned
// exam sessions do not pile up in memory.
type Sweeper struct {
	cron  *cron.Cron
	store *session.MemoryStore
}

func NewSweeper(store *session.MemoryStore) *Sweeper {
	return &Sweeper{cron: cron.New(), store: store}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@every 10m", func() {
		removed := s.store.Sweep()
		if removed > 0 {
			log.Info().Int("removed", removed).Msg("expired session entries swept")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
