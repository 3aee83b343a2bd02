package copro

// TicketStatus segue o ciclo Nouveau → Clôturé.
type TicketStatus string

const (
	TicketOpen            TicketStatus = "Nouveau"
	TicketInProgress      TicketStatus = "En cours"
	TicketWaitingProvider TicketStatus = "Attente Prestataire"
	TicketResolved        TicketStatus = "Résolu"
	TicketClosed          TicketStatus = "Clôturé"
)

// TicketPriority classifica urgência do incidente.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "Basse"
	PriorityMedium TicketPriority = "Moyenne"
	PriorityHigh   TicketPriority = "Haute"
	PriorityUrgent TicketPriority = "Urgente"
)

// InterventionStatus acompanha a execução pelo prestador.
type InterventionStatus string

const (
	InterventionPlanned    InterventionStatus = "Planifiée"
	InterventionInProgress InterventionStatus = "En cours"
	InterventionCompleted  InterventionStatus = "Terminée"
	InterventionCancelled  InterventionStatus = "Annulée"
)

var ticketFlow = []TicketStatus{TicketOpen, TicketInProgress, TicketWaitingProvider, TicketResolved, TicketClosed}

// IsOpen indica ticket ainda não resolvido.
func (s TicketStatus) IsOpen() bool {
	return s != TicketResolved && s != TicketClosed
}

// Rank devolve a posição do status no fluxo, ou -1.
func (s TicketStatus) Rank() int {
	for i, st := range ticketFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// Ticket representa um incidente de manutenção.
type Ticket struct {
	ID             string         `json:"id" validate:"required"`
	CoproprieteID  string         `json:"copropriete_id" validate:"required"`
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Priority       TicketPriority `json:"priority" validate:"required,oneof=Basse Moyenne Haute Urgente"`
	Status         TicketStatus   `json:"status" validate:"required,oneof=Nouveau 'En cours' 'Attente Prestataire' Résolu Clôturé"`
	AuthorID       string         `json:"author_id" validate:"required"`
	AuthorName     string         `json:"author_name"`
	LotID          string         `json:"lot_id,omitempty"`
	DateCreated    Timestamp      `json:"date_created" validate:"required"`
	DateResolved   *Timestamp     `json:"date_resolved,omitempty"`
	IsPublic       bool           `json:"is_public"`
	Photos         []string       `json:"photos,omitempty"`
	InterventionID string         `json:"intervention_id,omitempty"`
}

// Intervention é a execução de um ticket por um prestador.
type Intervention struct {
	ID            string             `json:"id" validate:"required"`
	TicketID      string             `json:"ticket_id" validate:"required"`
	ProviderID    string             `json:"provider_id" validate:"required"`
	DatePlanned   Timestamp          `json:"date_planned" validate:"required"`
	DateRealized  *Timestamp         `json:"date_realized,omitempty"`
	Status        InterventionStatus `json:"status" validate:"required,oneof=Planifiée 'En cours' Terminée Annulée"`
	CostEstimated float64            `json:"cost_estimated" validate:"gte=0"`
	CostReal      *float64           `json:"cost_real,omitempty" validate:"omitempty,gte=0"`
	Description   string             `json:"description"`
	Documents     []string           `json:"documents,omitempty"`
	Comment       string             `json:"syndic_comment,omitempty"`
}
