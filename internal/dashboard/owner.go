package dashboard

import (
	"github.com/betterhouse/syndic/internal/finance"
)

// OwnerView restringe as páginas aos dados do coproprietário.
type OwnerView struct {
	*base
}

func (v *OwnerView) Dashboard() DashboardPage {
	balance := v.ownerBalance(v.viewer.User)
	page := DashboardPage{
		Role:          v.Role(),
		UserName:      v.viewer.User.Name,
		Copropriete:   v.snap.Copropriete,
		Balance:       &balance,
		Lots:          v.lots(),
		NextAG:        v.nextAssembly(),
		RecentTickets: []TicketItem{},
		Upcoming:      v.Upcoming(5),
	}
	for _, t := range v.tickets() {
		if t.AuthorID != v.viewer.User.ID {
			continue
		}
		if t.Status.IsOpen() {
			page.OpenTickets++
		}
		if len(page.RecentTickets) < 5 {
			page.RecentTickets = append(page.RecentTickets, v.ticketItem(t))
		}
	}
	announcements := v.Communication().Announcements
	if len(announcements) > 3 {
		announcements = announcements[:3]
	}
	page.Announcements = announcements
	return page
}

func (v *OwnerView) Balance() BalancePage {
	ob := v.ownerBalance(v.viewer.User)
	return BalancePage{
		Owners: []OwnerBalance{ob},
		Total:  ob.Amount,
		Label:  finance.FormatAmount(ob.Amount),
	}
}

// Accounting bloqueia o diário contábil.
func (v *OwnerView) Accounting(sel Selection) (AccountingPage, error) {
	norm, err := sel.Normalize(PageAccounting, v.opts.Now())
	if err != nil {
		return AccountingPage{}, err
	}
	if norm.Tab == TabJournal {
		return AccountingPage{}, ErrForbidden
	}
	return v.base.Accounting(norm)
}

func (v *OwnerView) Settings() (SettingsPage, error) {
	return SettingsPage{}, ErrForbidden
}
