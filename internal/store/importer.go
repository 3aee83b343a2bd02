package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema cria a tabela snapshots quando ausente.
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("store: schema: %w", err)
	}
	return nil
}

// Import valida o documento e grava uma nova linha em snapshots.
// Documentos inválidos nunca chegam ao banco.
func Import(ctx context.Context, db execer, source string, payload []byte) (string, error) {
	if _, err := DecodeBytes(payload); err != nil {
		return "", err
	}

	const query = `
        INSERT INTO snapshots (id, source, payload)
        VALUES ($1, $2, $3::jsonb)
    `

	id := uuid.NewString()
	if _, err := db.Exec(ctx, query, id, source, string(payload)); err != nil {
		return "", fmt.Errorf("store: gravar snapshot: %w", err)
	}
	return id, nil
}
