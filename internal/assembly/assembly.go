package assembly

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/betterhouse/syndic/internal/copro"
)

var printer = message.NewPrinter(language.French)

// SharePercent converte tantièmes em porcentagem com uma casa decimal.
func SharePercent(share int) float64 {
	return math.Round(float64(share)/copro.ShareDenominator*1000) / 10
}

// FormatSharePercent rende "4,5 %".
func FormatSharePercent(share int) string {
	return printer.Sprintf("%v %%", number.Decimal(SharePercent(share), number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

var flow = []copro.AGStatus{
	copro.AGDraft, copro.AGPlanned, copro.AGConvened,
	copro.AGOngoing, copro.AGCompleted, copro.AGClosed,
}

// Closed indica a ação explícita de encerramento da assembleia.
func Closed(status copro.AGStatus) bool {
	return status == copro.AGCompleted || status == copro.AGClosed
}

// Next devolve o status seguinte do ciclo.
func Next(status copro.AGStatus) (copro.AGStatus, bool) {
	for i, s := range flow {
		if s == status && i+1 < len(flow) {
			return flow[i+1], true
		}
	}
	return "", false
}

// CanTransition só admite o avanço de um passo.
func CanTransition(from, to copro.AGStatus) bool {
	next, ok := Next(from)
	return ok && next == to
}

// IsUpcoming indica assembleia futura em relação a now.
func IsUpcoming(ag copro.AGEvent, now time.Time) bool {
	return ag.Date.After(now)
}

// NextAssembly devolve a assembleia futura mais próxima.
func NextAssembly(ags []copro.AGEvent, now time.Time) (copro.AGEvent, bool) {
	var (
		best  copro.AGEvent
		found bool
	)
	for _, ag := range ags {
		if !IsUpcoming(ag, now) {
			continue
		}
		if !found || ag.Date.Before(best.Date.Time) {
			best, found = ag, true
		}
	}
	return best, found
}

// QuorumReport resume presença em tantièmes.
type QuorumReport struct {
	PresentShares     int                          `json:"present_tantiemes"`
	RepresentedShares int                          `json:"represented_tantiemes"`
	AbsentShares      int                          `json:"absent_tantiemes"`
	Percent           float64                      `json:"percent"`
	Counts            map[copro.PresenceStatus]int `json:"counts"`
}

// Quorum soma presentes e representados sobre o denominador.
func Quorum(participants []copro.Participant) QuorumReport {
	q := QuorumReport{Counts: map[copro.PresenceStatus]int{
		copro.Present: 0, copro.Represented: 0, copro.Absent: 0,
	}}
	for _, p := range participants {
		q.Counts[p.Status]++
		switch p.Status {
		case copro.Present:
			q.PresentShares += p.TotalShares
		case copro.Represented:
			q.RepresentedShares += p.TotalShares
		default:
			q.AbsentShares += p.TotalShares
		}
	}
	q.Percent = SharePercent(q.PresentShares + q.RepresentedShares)
	return q
}

// ResolutionView junta a resolução ao resultado calculado.
type ResolutionView struct {
	copro.Resolution
	Outcome        copro.VoteStatus `json:"outcome"`
	ForPercent     float64          `json:"for_percent"`
	AgainstPercent float64          `json:"against_percent"`
	AbstainPercent float64          `json:"abstain_percent"`
	ForLabel       string           `json:"for_label"`
}

// Views calcula o resultado de cada resolução da assembleia. Tipos
// desconhecidos ficam pendentes.
func (e *Evaluator) Views(ag copro.AGEvent) []ResolutionView {
	closed := Closed(ag.Status)
	out := make([]ResolutionView, 0, len(ag.Resolutions))
	for _, res := range ag.Resolutions {
		outcome, _ := e.Outcome(res, closed)
		out = append(out, ResolutionView{
			Resolution:     res,
			Outcome:        outcome,
			ForPercent:     SharePercent(res.SharesFor),
			AgainstPercent: SharePercent(res.SharesAgainst),
			AbstainPercent: SharePercent(res.SharesAbstain),
			ForLabel:       FormatSharePercent(res.SharesFor),
		})
	}
	return out
}

// SortByDate ordena uma cópia, mais recentes primeiro.
func SortByDate(ags []copro.AGEvent) []copro.AGEvent {
	out := make([]copro.AGEvent, len(ags))
	copy(out, ags)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out
}
