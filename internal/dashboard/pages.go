package dashboard

import (
	"time"

	"github.com/betterhouse/syndic/internal/agenda"
	"github.com/betterhouse/syndic/internal/assembly"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/finance"
)

type LotItem struct {
	copro.Lot
	BuildingName string  `json:"building_name"`
	OwnerName    string  `json:"owner_name"`
	SharePercent float64 `json:"share_percent"`
	ShareLabel   string  `json:"share_label"`
}

type TicketItem struct {
	copro.Ticket
	AuthorDisplay string `json:"author_display"`
	LotNumber     string `json:"lot_number,omitempty"`
}

type TicketDetail struct {
	TicketItem
	Intervention *copro.Intervention `json:"intervention,omitempty"`
	ProviderName string              `json:"provider_name,omitempty"`
}

type AssemblyItem struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Type     copro.AGType   `json:"type"`
	Date     time.Time      `json:"date"`
	Location string         `json:"location"`
	Status   copro.AGStatus `json:"status"`
	Upcoming bool           `json:"upcoming"`
}

type ParticipantItem struct {
	copro.Participant
	Name         string  `json:"name"`
	SharePercent float64 `json:"share_percent"`
}

type AssemblyDetail struct {
	copro.AGEvent
	Resolutions  []assembly.ResolutionView `json:"resolutions"`
	Participants []ParticipantItem         `json:"participants"`
	Quorum       assembly.QuorumReport     `json:"quorum"`
	Documents    []copro.Document          `json:"documents"`
}

type OwnerBalance struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	LotIDs []string `json:"lot_ids"`
	Amount float64  `json:"amount"`
	Label  string   `json:"label"`
}

type BalancePage struct {
	Owners []OwnerBalance `json:"owners"`
	Total  float64        `json:"total"`
	Label  string         `json:"label"`
}

type AccountingPage struct {
	Tab       string                  `json:"tab"`
	Summary   finance.Summary         `json:"summary"`
	Records   []copro.FinancialRecord `json:"records,omitempty"`
	Ledger    *finance.LedgerReport   `json:"ledger,omitempty"`
	Journal   []copro.JournalEntry    `json:"journal,omitempty"`
	Budget    *finance.BudgetSummary  `json:"budget,omitempty"`
	FundCalls []copro.FinancialRecord `json:"fund_calls,omitempty"`
}

type BuildingItem struct {
	copro.Building
	Lots []LotItem `json:"lots"`
}

type PropertyPage struct {
	Copropriete     copro.Copropriete     `json:"copropriete"`
	Buildings       []BuildingItem        `json:"buildings"`
	TechnicalInfos  []copro.TechnicalInfo `json:"technical_infos"`
	ShareTotal      int                   `json:"share_total"`
	ShareMismatch   bool                  `json:"share_mismatch"`
	OwnedShares     int                   `json:"owned_shares,omitempty"`
	OwnedShareLabel string                `json:"owned_share_label,omitempty"`
}

type ProviderItem struct {
	copro.Provider
	Contracts []copro.Contract `json:"contracts,omitempty"`
}

type ProvidersPage struct {
	Providers []ProviderItem `json:"providers"`
}

type MessageItem struct {
	copro.Message
	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name,omitempty"`
	Read         bool   `json:"read"`
}

type CommunicationPage struct {
	Announcements []MessageItem    `json:"announcements"`
	Private       []MessageItem    `json:"private"`
	Unread        int              `json:"unread"`
	Templates     []copro.Template `json:"templates,omitempty"`
}

type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type AgendaPage struct {
	Grid     agenda.Grid `json:"grid"`
	Category string      `json:"category"`
	Previous MonthRef    `json:"previous"`
	Next     MonthRef    `json:"next"`
}

type SettingsPage struct {
	Copropriete   copro.Copropriete   `json:"copropriete"`
	Settings      copro.Settings      `json:"settings"`
	SyndicProfile copro.SyndicProfile `json:"syndic_profile"`
	Users         []copro.User        `json:"users"`
	SecurityLogs  []copro.SecurityLog `json:"security_logs"`
}

// DashboardPage traz os blocos do painel; cada papel preenche os seus.
type DashboardPage struct {
	Role          copro.Role                  `json:"role"`
	UserName      string                      `json:"user_name"`
	Copropriete   copro.Copropriete           `json:"copropriete"`
	Summary       *finance.Summary            `json:"summary,omitempty"`
	Statuses      map[copro.PaymentStatus]int `json:"statuses,omitempty"`
	OpenTickets   int                         `json:"open_tickets"`
	UrgentTickets int                         `json:"urgent_tickets"`
	Balance       *OwnerBalance               `json:"balance,omitempty"`
	Lots          []LotItem                   `json:"lots,omitempty"`
	NextAG        *AssemblyItem               `json:"next_ag,omitempty"`
	RecentTickets []TicketItem                `json:"recent_tickets"`
	Announcements []MessageItem               `json:"announcements,omitempty"`
	Upcoming      []copro.CalendarEvent       `json:"upcoming"`
}
