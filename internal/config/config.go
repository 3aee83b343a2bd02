package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/betterhouse/syndic/internal/assembly"
	"github.com/betterhouse/syndic/internal/copro"
)

const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	SnapshotSource  string
	SeedFile        string
	SnapshotRefresh string
	DBDSN           string
	RedisURL        string
	CacheTTL        time.Duration
	JWTAccessTTL    time.Duration
	JWTSecret       string
	AllowOrigins    []string
	Location        *time.Location
	MajorityRules   map[copro.MajorityType]assembly.Threshold
	ReferenceDate   time.Time
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Now devolve o instante de referência das derivações. Com
// REFERENCE_DATE definido o relógio fica parado nessa data.
func (c *Config) Now() time.Time {
	if !c.ReferenceDate.IsZero() {
		return c.ReferenceDate
	}
	return time.Now().In(c.Location)
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(getEnv)
}

// FromEnv monta a configuração a partir de uma função de lookup.
func FromEnv(lookup func(key, def string) string) (*Config, error) {
	cfg := &Config{}

	port, err := strconv.Atoi(lookup("PORT", "8080"))
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.SnapshotSource = strings.ToLower(strings.TrimSpace(lookup("SNAPSHOT_SOURCE", SourceSeed)))
	cfg.SeedFile = strings.TrimSpace(lookup("SEED_FILE", ""))
	cfg.DBDSN = strings.TrimSpace(lookup("DB_DSN", ""))
	switch cfg.SnapshotSource {
	case SourceSeed:
	case SourcePostgres:
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN obrigatório com SNAPSHOT_SOURCE=postgres")
		}
	default:
		return nil, errors.New("SNAPSHOT_SOURCE deve ser seed ou postgres")
	}

	cfg.SnapshotRefresh = strings.TrimSpace(lookup("SNAPSHOT_REFRESH", ""))
	if cfg.SnapshotRefresh != "" {
		if _, err := cron.ParseStandard(cfg.SnapshotRefresh); err != nil {
			return nil, fmt.Errorf("SNAPSHOT_REFRESH inválido: %w", err)
		}
	}

	cfg.RedisURL = strings.TrimSpace(lookup("REDIS_URL", ""))

	if cfg.CacheTTL, err = parseDuration(lookup, "CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	cfg.JWTSecret = strings.TrimSpace(lookup("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	if cfg.JWTAccessTTL, err = parseDuration(lookup, "JWT_ACCESS_TTL", 12*time.Hour); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(lookup("ALLOW_ORIGINS", ""), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.Location, err = time.LoadLocation(strings.TrimSpace(lookup("TIMEZONE", "Africa/Casablanca")))
	if err != nil {
		return nil, errors.New("TIMEZONE inválido")
	}

	cfg.MajorityRules, err = assembly.ParseRules(lookup("AG_MAJORITY_RULES", ""))
	if err != nil {
		return nil, fmt.Errorf("AG_MAJORITY_RULES inválido: %w", err)
	}

	if raw := strings.TrimSpace(lookup("REFERENCE_DATE", "")); raw != "" {
		ref, err := parseReferenceDate(raw, cfg.Location)
		if err != nil {
			return nil, errors.New("REFERENCE_DATE inválido")
		}
		cfg.ReferenceDate = ref
	}

	if cfg.RateLimitPublic, err = parseRateLimit(lookup, "RATE_LIMIT_PUBLIC", RateLimitConfig{RequestsPerSecond: 10, Burst: 20}); err != nil {
		return nil, err
	}
	if cfg.RateLimitAuth, err = parseRateLimit(lookup, "RATE_LIMIT_AUTH", RateLimitConfig{RequestsPerSecond: 10, Burst: 40}); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDuration(lookup func(string, string) string, key string, def time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(lookup(key, ""))
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil || dur <= 0 {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

// parseReferenceDate aceita RFC 3339 ou apenas a data (meio-dia local).
func parseReferenceDate(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(12 * time.Hour), nil
}

// parseRateLimit lê "req_por_segundo:burst", ex. "10:20".
func parseRateLimit(lookup func(string, string) string, key string, def RateLimitConfig) (RateLimitConfig, error) {
	val := strings.TrimSpace(lookup(key, ""))
	if val == "" {
		return def, nil
	}
	rps, burst, ok := strings.Cut(val, ":")
	if !ok {
		return RateLimitConfig{}, errors.New(key + " inválido")
	}
	perSecond, err := strconv.ParseFloat(strings.TrimSpace(rps), 64)
	if err != nil || perSecond <= 0 {
		return RateLimitConfig{}, errors.New(key + " inválido")
	}
	b, err := strconv.Atoi(strings.TrimSpace(burst))
	if err != nil || b <= 0 {
		return RateLimitConfig{}, errors.New(key + " inválido")
	}
	return RateLimitConfig{RequestsPerSecond: perSecond, Burst: b}, nil
}
