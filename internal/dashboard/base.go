package dashboard

import (
	"errors"
	"sort"
	"strings"

	"github.com/betterhouse/syndic/internal/agenda"
	"github.com/betterhouse/syndic/internal/assembly"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/finance"
	"github.com/betterhouse/syndic/internal/store"
	"github.com/betterhouse/syndic/internal/visibility"
)

// base implementa as páginas comuns; os filtros de visibilidade já
// tratam o bypass do síndico.
type base struct {
	snap   *store.Snapshot
	viewer visibility.Viewer
	opts   Options
	events []copro.CalendarEvent
}

func (b *base) Role() copro.Role {
	return b.viewer.User.Role
}

func (b *base) User() copro.User {
	return b.viewer.User
}

func (b *base) records() []copro.FinancialRecord {
	return visibility.FinancialRecords(b.viewer, b.snap.Records)
}

func (b *base) Summary() finance.Summary {
	return finance.Summarize(b.records())
}

func (b *base) Accounting(sel Selection) (AccountingPage, error) {
	sel, err := sel.Normalize(PageAccounting, b.opts.Now())
	if err != nil {
		return AccountingPage{}, err
	}
	records := b.records()
	page := AccountingPage{Tab: sel.Tab, Summary: finance.Summarize(records)}
	switch sel.Tab {
	case TabJournal:
		ledger := finance.Ledger(b.snap.Journal, b.snap.Accounts)
		page.Ledger = &ledger
		page.Journal = b.snap.Journal
	case TabBudget:
		budget := finance.BudgetReport(b.snap.BudgetLines)
		page.Budget = &budget
	case TabCalls:
		page.FundCalls = finance.FundCalls(records)
	default:
		page.Records = finance.Filter(records, finance.Query{Type: sel.Type, Search: sel.Search})
	}
	return page, nil
}

func (b *base) ownerBalance(user copro.User) OwnerBalance {
	lots := b.snap.OwnedLotIDs(user.ID)
	amount := finance.UserBalance(b.snap.Records, lots)
	return OwnerBalance{
		UserID: user.ID,
		Name:   user.Name,
		LotIDs: lots,
		Amount: amount,
		Label:  finance.FormatAmount(amount),
	}
}

func (b *base) lotItem(l copro.Lot) LotItem {
	item := LotItem{
		Lot:          l,
		BuildingName: copro.UnknownName,
		OwnerName:    b.snap.UserName(l.OwnerID),
		SharePercent: assembly.SharePercent(l.SharesGeneral),
		ShareLabel:   assembly.FormatSharePercent(l.SharesGeneral),
	}
	if bld, err := b.snap.Building(l.BuildingID); err == nil {
		item.BuildingName = bld.Name
	}
	return item
}

func (b *base) lots() []LotItem {
	lots := visibility.Lots(b.viewer, b.snap.Lots)
	out := make([]LotItem, 0, len(lots))
	for _, l := range lots {
		out = append(out, b.lotItem(l))
	}
	return out
}

func (b *base) Property() PropertyPage {
	lots := b.lots()
	page := PropertyPage{
		Copropriete:    b.snap.Copropriete,
		Buildings:      make([]BuildingItem, 0, len(b.snap.Buildings)),
		TechnicalInfos: b.snap.TechnicalInfos,
		ShareTotal:     b.snap.ShareTotal(),
	}
	page.ShareMismatch = page.ShareTotal != copro.ShareDenominator
	if !b.viewer.IsSyndic() {
		page.OwnedShares = b.snap.ShareTotalFor(b.viewer.User.ID)
		page.OwnedShareLabel = assembly.FormatSharePercent(page.OwnedShares)
	}
	for _, bld := range b.snap.Buildings {
		item := BuildingItem{Building: bld, Lots: []LotItem{}}
		for _, l := range lots {
			if l.BuildingID == bld.ID {
				item.Lots = append(item.Lots, l)
			}
		}
		if len(item.Lots) == 0 && !b.viewer.IsSyndic() {
			continue
		}
		page.Buildings = append(page.Buildings, item)
	}
	return page
}

func (b *base) assemblyItem(ag copro.AGEvent) AssemblyItem {
	return AssemblyItem{
		ID:       ag.ID,
		Title:    ag.Title,
		Type:     ag.Type,
		Date:     ag.Date.Time,
		Location: ag.Location,
		Status:   ag.Status,
		Upcoming: assembly.IsUpcoming(ag, b.opts.Now()),
	}
}

func (b *base) Assemblies() []AssemblyItem {
	ags := assembly.SortByDate(visibility.Assemblies(b.viewer, b.snap.Assemblies))
	out := make([]AssemblyItem, 0, len(ags))
	for _, ag := range ags {
		out = append(out, b.assemblyItem(ag))
	}
	return out
}

func (b *base) nextAssembly() *AssemblyItem {
	ag, ok := assembly.NextAssembly(visibility.Assemblies(b.viewer, b.snap.Assemblies), b.opts.Now())
	if !ok {
		return nil
	}
	item := b.assemblyItem(ag)
	return &item
}

func (b *base) Assembly(id string) (AssemblyDetail, error) {
	ag, err := b.snap.AG(id)
	if err != nil {
		return AssemblyDetail{}, notFound(err)
	}
	if len(visibility.Assemblies(b.viewer, []copro.AGEvent{ag})) == 0 {
		return AssemblyDetail{}, ErrNotFound
	}

	detail := AssemblyDetail{
		AGEvent:      ag,
		Resolutions:  b.opts.Evaluator.Views(ag),
		Participants: make([]ParticipantItem, 0, len(ag.Participants)),
		Quorum:       assembly.Quorum(ag.Participants),
		Documents:    []copro.Document{},
	}
	for _, p := range ag.Participants {
		detail.Participants = append(detail.Participants, ParticipantItem{
			Participant:  p,
			Name:         b.snap.UserName(p.UserID),
			SharePercent: assembly.SharePercent(p.TotalShares),
		})
	}
	for _, d := range visibility.Documents(b.viewer, b.snap.Documents) {
		if d.AGID == ag.ID {
			detail.Documents = append(detail.Documents, d)
		}
	}
	return detail, nil
}

func (b *base) ticketItem(t copro.Ticket) TicketItem {
	item := TicketItem{Ticket: t, AuthorDisplay: b.snap.UserName(t.AuthorID)}
	if t.LotID != "" {
		if l, err := b.snap.Lot(t.LotID); err == nil {
			item.LotNumber = l.Number
		}
	}
	return item
}

func (b *base) tickets() []copro.Ticket {
	tickets := visibility.Tickets(b.viewer, b.snap.Tickets)
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].DateCreated.After(tickets[j].DateCreated.Time)
	})
	return tickets
}

func (b *base) Maintenance(sel Selection) ([]TicketItem, error) {
	sel, err := sel.Normalize(PageMaintenance, b.opts.Now())
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(sel.Search)
	out := make([]TicketItem, 0)
	for _, t := range b.tickets() {
		switch sel.Tab {
		case "open":
			if !t.Status.IsOpen() {
				continue
			}
		case "resolved":
			if t.Status.IsOpen() {
				continue
			}
		}
		if term != "" && !containsAny(term, t.Title, t.Description, t.Category) {
			continue
		}
		out = append(out, b.ticketItem(t))
	}
	return out, nil
}

func (b *base) Ticket(id string) (TicketDetail, error) {
	t, err := b.snap.Ticket(id)
	if err != nil {
		return TicketDetail{}, notFound(err)
	}
	if !visibility.CanSeeTicket(b.viewer, t) {
		return TicketDetail{}, ErrNotFound
	}
	detail := TicketDetail{TicketItem: b.ticketItem(t)}
	if t.InterventionID != "" {
		if it, err := b.snap.Intervention(t.InterventionID); err == nil {
			detail.Intervention = &it
			detail.ProviderName = b.snap.ProviderName(it.ProviderID)
		}
	}
	return detail, nil
}

func (b *base) Providers() ProvidersPage {
	providers := visibility.Providers(b.viewer, b.snap.Providers)
	page := ProvidersPage{Providers: make([]ProviderItem, 0, len(providers))}
	for _, p := range providers {
		page.Providers = append(page.Providers, ProviderItem{Provider: p})
	}
	return page
}

func (b *base) Documents(sel Selection) ([]copro.Document, error) {
	sel, err := sel.Normalize(PageDocuments, b.opts.Now())
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(sel.Search)
	out := make([]copro.Document, 0)
	for _, d := range visibility.Documents(b.viewer, b.snap.Documents) {
		if !copro.InDocumentTab(sel.Tab, d.Type) {
			continue
		}
		if term != "" && !containsAny(term, d.Title, d.Description) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateUpload.After(out[j].DateUpload.Time) })
	return out, nil
}

func (b *base) messageItem(m copro.Message) MessageItem {
	item := MessageItem{
		Message:    m,
		SenderName: b.snap.UserName(m.SenderUserID),
		Read:       m.IsReadBy(b.viewer.User.ID) || m.SenderUserID == b.viewer.User.ID,
	}
	if m.SenderUserID == copro.SystemSender {
		item.SenderName = "BetterHouse"
	}
	if m.ReceiverUserID != "" {
		item.ReceiverName = b.snap.UserName(m.ReceiverUserID)
	}
	return item
}

func (b *base) messageItems(msgs []copro.Message) []MessageItem {
	out := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, b.messageItem(m))
	}
	return out
}

func (b *base) Communication() CommunicationPage {
	page := CommunicationPage{
		Announcements: b.messageItems(visibility.Announcements(b.viewer, b.snap.Messages)),
		Private:       b.messageItems(visibility.PrivateMessages(b.viewer, b.snap.Messages)),
	}
	for _, group := range [][]MessageItem{page.Announcements, page.Private} {
		for _, m := range group {
			if !m.Read {
				page.Unread++
			}
		}
	}
	return page
}

func (b *base) Agenda(sel Selection) (AgendaPage, error) {
	sel, err := sel.Normalize(PageAgenda, b.opts.Now().In(b.opts.Location))
	if err != nil {
		return AgendaPage{}, err
	}
	events := agenda.FilterCategory(b.events, sel.Category)
	py, pm := agenda.Shift(sel.Year, sel.Month, -1)
	ny, nm := agenda.Shift(sel.Year, sel.Month, 1)
	category := sel.Category
	if category == "" {
		category = "all"
	}
	return AgendaPage{
		Grid:     agenda.BuildGrid(sel.Year, sel.Month, events, agenda.GridOptions{Location: b.opts.Location, Now: b.opts.Now()}),
		Category: category,
		Previous: MonthRef{Year: py, Month: int(pm)},
		Next:     MonthRef{Year: ny, Month: int(nm)},
	}, nil
}

func (b *base) Upcoming(limit int) []copro.CalendarEvent {
	return agenda.Upcoming(b.events, b.opts.Now(), limit)
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
