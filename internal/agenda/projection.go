package agenda

import (
	"strconv"
	"time"

	"github.com/betterhouse/syndic/internal/copro"
)

// ProjectionSource reúne as coleções que viram eventos de agenda.
type ProjectionSource struct {
	CoproprieteID string
	Assemblies    []copro.AGEvent
	Interventions []copro.Intervention
	Tickets       []copro.Ticket
	Records       []copro.FinancialRecord
	Manual        []copro.CalendarEvent
	Location      *time.Location
}

// Project deriva a agenda: assembleias, intervenções, chamadas de fundos
// e eventos manuais, nessa ordem.
func Project(src ProjectionSource) []copro.CalendarEvent {
	loc := src.Location
	if loc == nil {
		loc = time.UTC
	}
	tickets := make(map[string]copro.Ticket, len(src.Tickets))
	for _, t := range src.Tickets {
		tickets[t.ID] = t
	}

	events := make([]copro.CalendarEvent, 0, len(src.Assemblies)+len(src.Interventions)+len(src.Manual)+1)

	for _, ag := range src.Assemblies {
		events = append(events, copro.CalendarEvent{
			ID:              "ev_ag_" + ag.ID,
			CoproprieteID:   ag.CoproprieteID,
			Category:        copro.EventAG,
			Title:           ag.Title,
			Description:     ag.Description,
			StartDate:       ag.Date,
			Level:           copro.ImportanceImportant,
			VisibleToOwners: ag.Status != copro.AGDraft,
			LinkType:        copro.LinkAG,
			LinkID:          ag.ID,
		})
	}

	for _, it := range src.Interventions {
		ticket, ok := tickets[it.TicketID]
		if !ok {
			continue
		}
		events = append(events, copro.CalendarEvent{
			ID:              "ev_int_" + it.ID,
			CoproprieteID:   ticket.CoproprieteID,
			Category:        copro.EventWorks,
			Title:           "Intervention: " + ticket.Category,
			Description:     it.Description,
			StartDate:       it.DatePlanned,
			Level:           copro.ImportanceNormal,
			VisibleToOwners: true,
			LinkType:        copro.LinkIntervention,
			LinkID:          it.ID,
		})
	}

	for _, rec := range src.Records {
		if rec.Category != copro.CategoryFundCall {
			continue
		}
		y, m, d := rec.Date.In(loc).Date()
		ev := copro.CalendarEvent{
			ID:              "ev_fin_" + rec.ID,
			CoproprieteID:   src.CoproprieteID,
			Category:        copro.EventPayment,
			Title:           "Échéance: " + rec.Description,
			Description:     "Montant total: " + strconv.FormatFloat(rec.Amount, 'f', -1, 64) + " MAD",
			StartDate:       copro.At(time.Date(y, m, d, 9, 0, 0, 0, loc)),
			Level:           copro.ImportanceImportant,
			VisibleToOwners: true,
			LinkType:        copro.LinkFinance,
			LinkID:          rec.ID,
		}
		if rec.RelatedLotID != "" {
			ev.RelatedLotIDs = []string{rec.RelatedLotID}
		}
		events = append(events, ev)
	}

	events = append(events, src.Manual...)
	return events
}
