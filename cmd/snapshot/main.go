package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/db"
	"github.com/betterhouse/syndic/internal/finance"
	"github.com/betterhouse/syndic/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", tz).Msg("TIMEZONE inválido")
		}
		copro.SetLocation(loc)
	}

	ctx := context.Background()
	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "check":
		if err := runCheck(args); err != nil {
			log.Fatal().Err(err).Msg("documento rejeitado")
		}
	case "import":
		if err := runImport(ctx, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao importar snapshot")
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "snapshot CLI")
	fmt.Fprintln(os.Stderr, "uso:")
	fmt.Fprintln(os.Stderr, "  snapshot check [--file seed.json]")
	fmt.Fprintln(os.Stderr, "  snapshot import [--file seed.json] [--source nome]")
	fmt.Fprintln(os.Stderr, "sem --file usa o documento embutido")
}

func readDocument(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return store.SeedDocument(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", path, err)
	}
	return raw, nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	file := fs.String("file", "", "documento JSON a validar")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := readDocument(*file)
	if err != nil {
		return err
	}

	ds, err := store.DecodeBytes(raw)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			encoded, _ := json.MarshalIndent(verr.Problems, "", "  ")
			fmt.Println(string(encoded))
		}
		return err
	}

	snap := store.NewSnapshot(ds, time.Now())
	summary := finance.Summarize(snap.Records)
	report := map[string]any{
		"copropriete":   snap.Copropriete.Name,
		"users":         len(snap.Users),
		"lots":          len(snap.Lots),
		"tickets":       len(snap.Tickets),
		"assemblies":    len(snap.Assemblies),
		"documents":     len(snap.Documents),
		"records":       len(snap.Records),
		"share_total":   snap.ShareTotal(),
		"share_matches": snap.ShareTotal() == copro.ShareDenominator,
		"balance":       finance.FormatAmount(summary.Balance),
		"pending":       finance.FormatAmount(summary.TotalPending),
		"recovery_rate": summary.RecoveryLabel,
		"missing_refs":  snap.MissingReferences(),
	}
	encoded, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(encoded))
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var (
		file   = fs.String("file", "", "documento JSON a importar")
		source = fs.String("source", "", "rótulo gravado na coluna source")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		return errors.New("defina DB_DSN")
	}

	raw, err := readDocument(*file)
	if err != nil {
		return err
	}
	label := *source
	if label == "" {
		label = "cli:" + *file
		if *file == "" {
			label = "cli:embedded"
		}
	}

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	var id string
	err = db.WithTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := store.EnsureSchema(ctx, tx); err != nil {
			return err
		}
		id, err = store.Import(ctx, tx, label, raw)
		return err
	})
	if err != nil {
		return err
	}

	log.Info().Str("id", id).Str("source", label).Msg("snapshot importado")
	return nil
}
