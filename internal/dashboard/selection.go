package dashboard

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/betterhouse/syndic/internal/copro"
)

// Page identifica a tela para validação das abas.
type Page string

const (
	PageAccounting  Page = "accounting"
	PageDocuments   Page = "documents"
	PageMaintenance Page = "maintenance"
	PageAgenda      Page = "agenda"
)

// Abas da contabilidade.
const (
	TabRecords = "records"
	TabJournal = "journal"
	TabBudget  = "budget"
	TabCalls   = "calls"
)

var pageTabs = map[Page][]string{
	PageAccounting:  {TabRecords, TabJournal, TabBudget, TabCalls},
	PageDocuments:   {copro.DocTabAll, copro.DocTabAG, copro.DocTabFinance, copro.DocTabLegal, copro.DocTabTech},
	PageMaintenance: {"all", "open", "resolved"},
}

// Selection substitui o estado local das telas: aba, busca, filtro e mês.
type Selection struct {
	Tab      string
	Type     string
	Search   string
	Category string
	Year     int
	Month    time.Month
}

// Normalize aplica a aba padrão e valida aba, categoria e mês.
func (s Selection) Normalize(page Page, now time.Time) (Selection, error) {
	s.Tab = strings.ToLower(strings.TrimSpace(s.Tab))
	s.Search = strings.TrimSpace(s.Search)
	s.Category = strings.TrimSpace(s.Category)

	if tabs, ok := pageTabs[page]; ok {
		if s.Tab == "" {
			s.Tab = tabs[0]
		}
		if !slices.Contains(tabs, s.Tab) {
			return s, fmt.Errorf("%w: aba %q", ErrInvalidSelection, s.Tab)
		}
	}

	if page == PageAgenda {
		if s.Year == 0 {
			s.Year = now.Year()
		}
		if s.Month == 0 {
			s.Month = now.Month()
		}
		if s.Month < time.January || s.Month > time.December {
			return s, fmt.Errorf("%w: mês %d", ErrInvalidSelection, s.Month)
		}
		if s.Year < 1900 || s.Year > 2200 {
			return s, fmt.Errorf("%w: ano %d", ErrInvalidSelection, s.Year)
		}
		if s.Category != "" && s.Category != "all" && !copro.IsValidEventCategory(copro.EventCategory(s.Category)) {
			return s, fmt.Errorf("%w: categoria %q", ErrInvalidSelection, s.Category)
		}
	}
	return s, nil
}
