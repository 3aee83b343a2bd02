package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/copro"
)

// Store mantém o snapshot corrente; leitores nunca bloqueiam.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
	logger  zerolog.Logger
	now     func() time.Time
}

func New(source Source) *Store {
	return &Store{
		source: source,
		logger: log.With().Str("component", "store").Logger(),
		now:    time.Now,
	}
}

// NewStatic cria um Store já preenchido, sem Source.
func NewStatic(snap *Snapshot) *Store {
	s := New(nil)
	s.current.Store(snap)
	return s
}

// Load busca um novo documento e troca o snapshot de forma atômica.
// Em caso de erro o snapshot anterior permanece.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if s.source == nil {
		return nil, fmt.Errorf("store: source não configurada")
	}
	ds, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: carga de %s: %w", s.source.Name(), err)
	}

	snap := NewSnapshot(ds, s.now())
	if prev := s.current.Load(); prev != nil && prev.Version == snap.Version {
		s.logger.Debug().
			Str("source", s.source.Name()).
			Str("version", prev.Version).
			Msg("snapshot inalterado")
		return prev, nil
	}

	for _, p := range snap.MissingReferences() {
		s.logger.Warn().
			Str("field", p.Field).
			Str("detail", p.Message).
			Msg("referência cruzada ausente")
	}
	if total := snap.ShareTotal(); total != copro.ShareDenominator {
		s.logger.Warn().
			Int("share_total", total).
			Int("expected", copro.ShareDenominator).
			Msg("soma de tantièmes diferente do denominador")
	}

	s.current.Store(snap)
	s.logger.Info().
		Str("source", s.source.Name()).
		Str("version", snap.Version).
		Int("lots", len(snap.Lots)).
		Int("records", len(snap.Records)).
		Msg("snapshot carregado")
	return snap, nil
}

// Current devolve o snapshot vigente, ou nil antes da primeira carga.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// LoadSeed decodifica o documento embutido.
func LoadSeed() (*Snapshot, error) {
	ds, err := DecodeBytes(seedDocument)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(ds, time.Now()), nil
}
