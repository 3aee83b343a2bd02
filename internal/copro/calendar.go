package copro

// EventCategory classifica eventos da agenda.
type EventCategory string

const (
	EventAG           EventCategory = "AG"
	EventWorks        EventCategory = "Travaux"
	EventIntervention EventCategory = "Intervention"
	EventPayment      EventCategory = "Paiement"
	EventEmergency    EventCategory = "Urgence"
	EventOther        EventCategory = "Autre"
)

// IsValidEventCategory verifica a categoria informada.
func IsValidEventCategory(c EventCategory) bool {
	switch c {
	case EventAG, EventWorks, EventIntervention, EventPayment, EventEmergency, EventOther:
		return true
	}
	return false
}

// EventImportance é o nível de destaque.
type EventImportance string

const (
	ImportanceNormal    EventImportance = "Normal"
	ImportanceImportant EventImportance = "Important"
	ImportanceUrgent    EventImportance = "Urgent"
)

// LinkType aponta a entidade de origem do evento.
type LinkType string

const (
	LinkAG           LinkType = "AG"
	LinkTicket       LinkType = "TICKET"
	LinkIntervention LinkType = "INTERVENTION"
	LinkFinance      LinkType = "FINANCE"
	LinkDocument     LinkType = "DOC"
)

// CalendarEvent é uma entrada da agenda.
type CalendarEvent struct {
	ID              string          `json:"id" validate:"required"`
	CoproprieteID   string          `json:"copropriete_id" validate:"required"`
	Category        EventCategory   `json:"category" validate:"required,oneof=AG Travaux Intervention Paiement Urgence Autre"`
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description,omitempty"`
	StartDate       Timestamp       `json:"start_date" validate:"required"`
	EndDate         *Timestamp      `json:"end_date,omitempty"`
	Level           EventImportance `json:"level" validate:"required,oneof=Normal Important Urgent"`
	VisibleToOwners bool            `json:"is_visible_to_owners"`
	LinkType        LinkType        `json:"link_type,omitempty" validate:"omitempty,oneof=AG TICKET INTERVENTION FINANCE DOC"`
	LinkID          string          `json:"link_id,omitempty"`
	RelatedLotIDs   []string        `json:"related_lot_ids,omitempty"`
}
