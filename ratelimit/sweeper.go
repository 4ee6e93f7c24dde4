package ratelimit

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper periodically drops expired windows from a MemoryStore.
type Sweeper struct {
	cron  *cron.Cron
	store *MemoryStore
	spec  string
}

// NewSweeper takes a cron spec such as "@every 1m".
func NewSweeper(store *MemoryStore, spec string) *Sweeper {
	return &Sweeper{
		cron:  cron.New(),
		store: store,
		spec:  spec,
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if removed := s.store.Sweep(); removed > 0 {
			log.Debug().Int("removed", removed).Int("remaining", s.store.Len()).Msg("swept rate limit windows")
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("rate limit sweeper started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
