package finance

import (
	"strings"

	"github.com/betterhouse/syndic/internal/copro"
)

// Query replica a busca e o filtro de tipo da tela de contabilidade.
type Query struct {
	Type   string
	Search string
}

// NormalizeType aceita DEBIT/CREDIT em qualquer caixa; o resto vira "todos".
func NormalizeType(value string) copro.EntryType {
	switch copro.EntryType(strings.ToUpper(strings.TrimSpace(value))) {
	case copro.Debit:
		return copro.Debit
	case copro.Credit:
		return copro.Credit
	}
	return ""
}

// Filter aplica tipo e busca textual em descrição, categoria e referência.
func Filter(records []copro.FinancialRecord, q Query) []copro.FinancialRecord {
	kind := NormalizeType(q.Type)
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]copro.FinancialRecord, 0, len(records))
	for _, r := range records {
		if kind != "" && r.Type != kind {
			continue
		}
		if term != "" && !matches(term, r.Description, r.Category, r.UserReference) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
