package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed seed/betterhouse.json
var seedDocument []byte

// SeedDocument devolve uma cópia do documento embutido.
func SeedDocument() []byte {
	return append([]byte(nil), seedDocument...)
}

// Source fornece o documento de dados a cada carga.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*Dataset, error)
}

// SeedSource lê um JSON do disco ou, sem caminho, o documento embutido.
type SeedSource struct {
	Path string
}

func (s SeedSource) Name() string {
	if strings.TrimSpace(s.Path) == "" {
		return "seed:embedded"
	}
	return "seed:" + s.Path
}

func (s SeedSource) Fetch(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := seedDocument
	if path := strings.TrimSpace(s.Path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("store: leitura do seed: %w", err)
		}
		payload = data
	}
	return DecodeBytes(payload)
}

var ErrNoSnapshot = errors.New("store: nenhum snapshot no banco")

// PostgresSource lê o documento mais recente da tabela snapshots.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) Fetch(ctx context.Context) (*Dataset, error) {
	const query = `
        SELECT payload
        FROM snapshots
        ORDER BY loaded_at DESC
        LIMIT 1
    `

	var payload []byte
	if err := s.pool.QueryRow(ctx, query).Scan(&payload); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("store: consulta do snapshot: %w", err)
	}
	return DecodeBytes(payload)
}
