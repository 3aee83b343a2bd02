package agenda

import (
	"time"

	cal "github.com/rickar/cal/v2"
)

// feriados civis fixos do Marrocos; feriados religiosos seguem o
// calendário lunar e não entram aqui.
var moroccanHolidays = []*cal.Holiday{
	fixed("Nouvel An", time.January, 1, 0),
	fixed("Manifeste de l'Indépendance", time.January, 11, 0),
	fixed("Nouvel An Amazigh", time.January, 14, 2024),
	fixed("Fête du Travail", time.May, 1, 0),
	fixed("Fête du Trône", time.July, 30, 0),
	fixed("Allégeance Oued Ed-Dahab", time.August, 14, 0),
	fixed("Révolution du Roi et du Peuple", time.August, 20, 0),
	fixed("Fête de la Jeunesse", time.August, 21, 0),
	fixed("Marche Verte", time.November, 6, 0),
	fixed("Fête de l'Indépendance", time.November, 18, 0),
}

func fixed(name string, month time.Month, day, startYear int) *cal.Holiday {
	return &cal.Holiday{
		Name:      name,
		Type:      cal.ObservancePublic,
		Month:     month,
		Day:       day,
		StartYear: startYear,
		Func:      cal.CalcDayOfMonth,
	}
}

var morocco = newMoroccoCalendar()

func newMoroccoCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(moroccanHolidays...)
	return c
}

// Holiday devolve o nome do feriado na data, se houver.
func Holiday(t time.Time) (string, bool) {
	actual, _, h := morocco.IsHoliday(t)
	if !actual || h == nil {
		return "", false
	}
	return h.Name, true
}
