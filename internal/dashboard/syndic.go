package dashboard

import (
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/finance"
)

// SyndicView vê o condomínio inteiro.
type SyndicView struct {
	*base
}

func (v *SyndicView) Dashboard() DashboardPage {
	summary := finance.Summarize(v.snap.Records)
	page := DashboardPage{
		Role:          v.Role(),
		UserName:      v.viewer.User.Name,
		Copropriete:   v.snap.Copropriete,
		Summary:       &summary,
		Statuses:      finance.StatusBreakdown(v.snap.Records),
		NextAG:        v.nextAssembly(),
		RecentTickets: []TicketItem{},
		Upcoming:      v.Upcoming(5),
	}
	for _, t := range v.tickets() {
		if t.Status.IsOpen() {
			page.OpenTickets++
			if t.Priority == copro.PriorityUrgent {
				page.UrgentTickets++
			}
		}
		if len(page.RecentTickets) < 5 {
			page.RecentTickets = append(page.RecentTickets, v.ticketItem(t))
		}
	}
	return page
}

// Balance lista os saldos devedores de cada coproprietário.
func (v *SyndicView) Balance() BalancePage {
	page := BalancePage{Owners: []OwnerBalance{}}
	for _, u := range v.snap.Users {
		if u.IsSyndic() {
			continue
		}
		ob := v.ownerBalance(u)
		page.Owners = append(page.Owners, ob)
		page.Total += ob.Amount
	}
	page.Label = finance.FormatAmount(page.Total)
	return page
}

// Providers inclui os contratos de cada prestador.
func (v *SyndicView) Providers() ProvidersPage {
	page := v.base.Providers()
	for i := range page.Providers {
		for _, c := range v.snap.Contracts {
			if c.ProviderID == page.Providers[i].ID {
				page.Providers[i].Contracts = append(page.Providers[i].Contracts, c)
			}
		}
	}
	return page
}

// Communication inclui os modelos de mensagem.
func (v *SyndicView) Communication() CommunicationPage {
	page := v.base.Communication()
	page.Templates = v.snap.Templates
	return page
}

func (v *SyndicView) Settings() (SettingsPage, error) {
	return SettingsPage{
		Copropriete:   v.snap.Copropriete,
		Settings:      v.snap.Settings,
		SyndicProfile: v.snap.SyndicProfile,
		Users:         v.snap.Users,
		SecurityLogs:  v.snap.SecurityLogs,
	}, nil
}
