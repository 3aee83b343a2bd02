package visibility

import (
	"slices"
	"sort"

	"github.com/betterhouse/syndic/internal/copro"
)

// Tickets: autor ou público.
func Tickets(v Viewer, items []copro.Ticket) []copro.Ticket {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(t copro.Ticket) bool {
		return t.IsPublic || t.AuthorID == v.User.ID
	})
}

// CanSeeTicket aplica a mesma regra a um único ticket.
func CanSeeTicket(v Viewer, t copro.Ticket) bool {
	return v.IsSyndic() || t.IsPublic || t.AuthorID == v.User.ID
}

// Documents: pessoais do usuário ou difundidos sem dono.
func Documents(v Viewer, items []copro.Document) []copro.Document {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(d copro.Document) bool {
		if d.OwnerID != "" {
			return d.OwnerID == v.User.ID
		}
		return d.VisibleToOwners
	})
}

// Announcements devolve anúncios e mensagens do bloco, mais recentes primeiro.
func Announcements(v Viewer, items []copro.Message) []copro.Message {
	out := keep(items, func(m copro.Message) bool {
		switch m.Type {
		case copro.MessageAnnouncement:
			return true
		case copro.MessageTargeted:
			return v.IsSyndic() || m.TargetBuildingID == "" || v.InBuilding(m.TargetBuildingID)
		}
		return false
	})
	sortNewest(out)
	return out
}

// PrivateMessages devolve conversas em que o usuário é parte.
func PrivateMessages(v Viewer, items []copro.Message) []copro.Message {
	out := keep(items, func(m copro.Message) bool {
		if m.Type != copro.MessagePrivate && m.Type != copro.MessageSystem {
			return false
		}
		return m.SenderUserID == v.User.ID || m.ReceiverUserID == v.User.ID
	})
	sortNewest(out)
	return out
}

// Messages une anúncios e conversas privadas.
func Messages(v Viewer, items []copro.Message) []copro.Message {
	if v.IsSyndic() {
		out := all(items)
		sortNewest(out)
		return out
	}
	out := append(Announcements(v, items), PrivateMessages(v, items)...)
	sortNewest(out)
	return out
}

func sortNewest(items []copro.Message) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DateSent.After(items[j].DateSent.Time)
	})
}

// CalendarEvents: visíveis e, para pagamentos, ligados a lotes do usuário.
func CalendarEvents(v Viewer, items []copro.CalendarEvent) []copro.CalendarEvent {
	var out []copro.CalendarEvent
	if v.IsSyndic() {
		out = all(items)
	} else {
		out = keep(items, func(e copro.CalendarEvent) bool {
			if !e.VisibleToOwners {
				return false
			}
			if e.Category != copro.EventPayment || len(e.RelatedLotIDs) == 0 {
				return true
			}
			return slices.ContainsFunc(e.RelatedLotIDs, v.OwnsLot)
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate.Time)
	})
	return out
}

// FinancialRecords: todas as despesas e os créditos dos lotes do usuário.
func FinancialRecords(v Viewer, items []copro.FinancialRecord) []copro.FinancialRecord {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(r copro.FinancialRecord) bool {
		return r.Type == copro.Debit || v.OwnsLot(r.RelatedLotID)
	})
}

func Lots(v Viewer, items []copro.Lot) []copro.Lot {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(l copro.Lot) bool {
		return l.OwnerID == v.User.ID
	})
}

func Providers(v Viewer, items []copro.Provider) []copro.Provider {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(p copro.Provider) bool {
		return p.IsActive()
	})
}

// Assemblies oculta rascunhos dos coproprietários.
func Assemblies(v Viewer, items []copro.AGEvent) []copro.AGEvent {
	if v.IsSyndic() {
		return all(items)
	}
	return keep(items, func(ag copro.AGEvent) bool {
		return ag.Status != copro.AGDraft
	})
}
