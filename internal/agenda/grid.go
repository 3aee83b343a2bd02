package agenda

import (
	"sort"
	"time"

	"github.com/betterhouse/syndic/internal/copro"
)

// Cell é uma casa da grade; Day 0 marca preenchimento.
type Cell struct {
	Day         int                   `json:"day"`
	Events      []copro.CalendarEvent `json:"events"`
	Weekend     bool                  `json:"weekend,omitempty"`
	Holiday     bool                  `json:"holiday,omitempty"`
	HolidayName string                `json:"holiday_name,omitempty"`
	Today       bool                  `json:"today,omitempty"`
}

// Grid é o mês em semanas iniciando na segunda-feira.
type Grid struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Days    int        `json:"days"`
	Leading int        `json:"leading"`
	Cells   []Cell     `json:"cells"`
}

type GridOptions struct {
	Location *time.Location
	Now      time.Time
}

func (o GridOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// DaysIn devolve o número de dias do mês.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks converte o dia da semana do dia 1 para segunda = 0.
func LeadingBlanks(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}

// BuildGrid distribui os eventos pela data local de início, ignorando a hora.
func BuildGrid(year int, month time.Month, events []copro.CalendarEvent, opts GridOptions) Grid {
	loc := opts.location()
	days := DaysIn(year, month)
	leading := LeadingBlanks(year, month)
	total := (days + leading + 6) / 7 * 7

	byDay := make(map[int][]copro.CalendarEvent)
	for _, e := range events {
		y, m, d := e.StartDate.In(loc).Date()
		if y == year && m == month {
			byDay[d] = append(byDay[d], e)
		}
	}

	todayDay := 0
	if !opts.Now.IsZero() {
		y, m, d := opts.Now.In(loc).Date()
		if y == year && m == month {
			todayDay = d
		}
	}

	g := Grid{Year: year, Month: month, Days: days, Leading: leading, Cells: make([]Cell, total)}
	for i := range g.Cells {
		day := i - leading + 1
		if day < 1 || day > days {
			g.Cells[i] = Cell{Events: []copro.CalendarEvent{}}
			continue
		}
		date := time.Date(year, month, day, 12, 0, 0, 0, loc)
		cell := Cell{
			Day:     day,
			Events:  byDay[day],
			Weekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			Today:   day == todayDay,
		}
		if cell.Events == nil {
			cell.Events = []copro.CalendarEvent{}
		}
		if name, ok := Holiday(date); ok {
			cell.Holiday = true
			cell.HolidayName = name
		}
		g.Cells[i] = cell
	}
	return g
}

// Shift navega delta meses a partir de year/month.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// FilterCategory mantém a categoria pedida; vazio ou "all" mantém tudo.
func FilterCategory(events []copro.CalendarEvent, category string) []copro.CalendarEvent {
	out := make([]copro.CalendarEvent, 0, len(events))
	for _, e := range events {
		if category == "" || category == "all" || string(e.Category) == category {
			out = append(out, e)
		}
	}
	return out
}

// Upcoming devolve os próximos eventos a partir de now, em ordem.
func Upcoming(events []copro.CalendarEvent, now time.Time, limit int) []copro.CalendarEvent {
	out := make([]copro.CalendarEvent, 0)
	for _, e := range events {
		if !e.StartDate.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate.Time) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
