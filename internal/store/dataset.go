package store

import "github.com/betterhouse/syndic/internal/copro"

// Dataset é o documento completo carregado de uma Source.
type Dataset struct {
	Copropriete    copro.Copropriete       `json:"copropriete"`
	Settings       copro.Settings          `json:"settings"`
	SyndicProfile  copro.SyndicProfile     `json:"syndic_profile"`
	Users          []copro.User            `json:"users" validate:"dive"`
	Buildings      []copro.Building        `json:"buildings" validate:"dive"`
	Lots           []copro.Lot             `json:"lots" validate:"dive"`
	TechnicalInfos []copro.TechnicalInfo   `json:"technical_infos" validate:"dive"`
	Accounts       []copro.Account         `json:"accounts" validate:"dive"`
	Journal        []copro.JournalEntry    `json:"journal" validate:"dive"`
	BudgetLines    []copro.BudgetLine      `json:"budget_lines" validate:"dive"`
	Records        []copro.FinancialRecord `json:"finance_records" validate:"dive"`
	Providers      []copro.Provider        `json:"providers" validate:"dive"`
	Contracts      []copro.Contract        `json:"contracts" validate:"dive"`
	Interventions  []copro.Intervention    `json:"interventions" validate:"dive"`
	Tickets        []copro.Ticket          `json:"tickets" validate:"dive"`
	Assemblies     []copro.AGEvent         `json:"assemblies" validate:"dive"`
	Documents      []copro.Document        `json:"documents" validate:"dive"`
	Templates      []copro.Template        `json:"templates" validate:"dive"`
	Messages       []copro.Message         `json:"messages" validate:"dive"`
	ManualEvents   []copro.CalendarEvent   `json:"manual_events" validate:"dive"`
	SecurityLogs   []copro.SecurityLog     `json:"security_logs" validate:"dive"`
}

// normalize troca coleções nulas por fatias vazias.
func (d *Dataset) normalize() {
	d.Users = orEmpty(d.Users)
	d.Buildings = orEmpty(d.Buildings)
	d.Lots = orEmpty(d.Lots)
	d.TechnicalInfos = orEmpty(d.TechnicalInfos)
	d.Accounts = orEmpty(d.Accounts)
	d.Journal = orEmpty(d.Journal)
	d.BudgetLines = orEmpty(d.BudgetLines)
	d.Records = orEmpty(d.Records)
	d.Providers = orEmpty(d.Providers)
	d.Contracts = orEmpty(d.Contracts)
	d.Interventions = orEmpty(d.Interventions)
	d.Tickets = orEmpty(d.Tickets)
	d.Assemblies = orEmpty(d.Assemblies)
	d.Documents = orEmpty(d.Documents)
	d.Templates = orEmpty(d.Templates)
	d.Messages = orEmpty(d.Messages)
	d.ManualEvents = orEmpty(d.ManualEvents)
	d.SecurityLogs = orEmpty(d.SecurityLogs)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
