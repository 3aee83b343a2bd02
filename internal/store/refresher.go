package store

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Refresher recarrega o Store segundo uma expressão cron.
type Refresher struct {
	store    *Store
	schedule string
	timeout  time.Duration
	logger   zerolog.Logger

	once   sync.Once
	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewRefresher(store *Store, schedule string) *Refresher {
	return &Refresher{
		store:    store,
		schedule: schedule,
		timeout:  30 * time.Second,
		logger:   log.With().Str("component", "refresher").Logger(),
	}
}

// Start agenda a recarga. Agenda vazia desativa o refresher.
func (r *Refresher) Start(parent context.Context) error {
	if r.schedule == "" {
		return nil
	}
	var startErr error
	r.once.Do(func() {
		ctx, cancel := context.WithCancel(parent)
		c := cron.New()
		if _, err := c.AddFunc(r.schedule, func() { r.RunOnce(ctx) }); err != nil {
			cancel()
			startErr = err
			return
		}
		r.cron = c
		r.cancel = cancel
		c.Start()
		r.logger.Info().Str("schedule", r.schedule).Msg("refresher: agenda iniciada")
	})
	return startErr
}

// RunOnce executa uma recarga; falhas mantêm o snapshot atual.
func (r *Refresher) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	previous := r.store.Current()
	snap, err := r.store.Load(runCtx)
	if err != nil {
		ev := r.logger.Error().Err(err)
		if previous != nil {
			ev = ev.Str("kept_version", previous.Version)
		}
		ev.Msg("refresher: recarga falhou")
		return
	}
	r.logger.Debug().Str("version", snap.Version).Msg("refresher: snapshot trocado")
}

// Stop encerra a agenda e aguarda a execução em curso.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}
