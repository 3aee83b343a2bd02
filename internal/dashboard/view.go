package dashboard

import (
	"errors"
	"time"

	"github.com/betterhouse/syndic/internal/agenda"
	"github.com/betterhouse/syndic/internal/assembly"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/finance"
	"github.com/betterhouse/syndic/internal/store"
	"github.com/betterhouse/syndic/internal/visibility"
)

var (
	ErrForbidden        = errors.New("dashboard: acesso restrito ao síndico")
	ErrNotFound         = errors.New("dashboard: registro não encontrado")
	ErrInvalidSelection = errors.New("dashboard: seleção inválida")
)

// View expõe as páginas já filtradas para o papel do usuário.
type View interface {
	Role() copro.Role
	User() copro.User
	Dashboard() DashboardPage
	Accounting(sel Selection) (AccountingPage, error)
	Summary() finance.Summary
	Balance() BalancePage
	Property() PropertyPage
	Assemblies() []AssemblyItem
	Assembly(id string) (AssemblyDetail, error)
	Maintenance(sel Selection) ([]TicketItem, error)
	Ticket(id string) (TicketDetail, error)
	Providers() ProvidersPage
	Documents(sel Selection) ([]copro.Document, error)
	Communication() CommunicationPage
	Agenda(sel Selection) (AgendaPage, error)
	Upcoming(limit int) []copro.CalendarEvent
	Settings() (SettingsPage, error)
}

// Options carrega dependências de cálculo compartilhadas.
type Options struct {
	Location  *time.Location
	Now       func() time.Time
	Evaluator *assembly.Evaluator
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Evaluator == nil {
		o.Evaluator = assembly.NewEvaluator(nil)
	}
	return o
}

// For escolhe a variante de View pelo papel, uma única vez por requisição.
func For(snap *store.Snapshot, user copro.User, opts Options) View {
	opts = opts.withDefaults()
	b := &base{
		snap:   snap,
		viewer: visibility.NewViewer(user, snap),
		opts:   opts,
	}
	b.events = visibility.CalendarEvents(b.viewer, agenda.Project(agenda.ProjectionSource{
		CoproprieteID: snap.Copropriete.ID,
		Assemblies:    snap.Assemblies,
		Interventions: snap.Interventions,
		Tickets:       snap.Tickets,
		Records:       snap.Records,
		Manual:        snap.ManualEvents,
		Location:      opts.Location,
	}))
	if user.IsSyndic() {
		return &SyndicView{base: b}
	}
	return &OwnerView{base: b}
}
