package copro

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

// DefaultLocation é o fuso usado até SetLocation ser chamado.
const DefaultLocation = "Africa/Casablanca"

var location atomic.Pointer[time.Location]

func init() {
	loc, err := time.LoadLocation(DefaultLocation)
	if err != nil {
		loc = time.UTC
	}
	location.Store(loc)
}

// SetLocation define o fuso aplicado a datas sem deslocamento.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location.Store(loc)
	}
}

// Location devolve o fuso vigente para datas sem deslocamento.
func Location() *time.Location {
	return location.Load()
}

// Timestamp aceita RFC 3339, data e hora sem fuso ou apenas a data.
// Valores sem deslocamento são lidos no fuso de Location.
type Timestamp struct {
	time.Time
}

var floatingLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// At embrulha um time.Time.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Ptr embrulha um time.Time opcional.
func Ptr(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// ParseTimestamp interpreta o valor textual de uma data do documento.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return Timestamp{Time: t}, nil
	}
	loc := Location()
	for _, layout := range floatingLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("data inválida %q", value)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("data inválida %s", data)
	}
	if strings.TrimSpace(raw) == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return ts.Time.MarshalJSON()
}
