package copro

// AGStatus segue Brouillon → Clôturée.
type AGStatus string

const (
	AGDraft     AGStatus = "Brouillon"
	AGPlanned   AGStatus = "Planifiée"
	AGConvened  AGStatus = "Convoquée"
	AGOngoing   AGStatus = "En cours"
	AGCompleted AGStatus = "Terminée"
	AGClosed    AGStatus = "Clôturée"
)

// AGType distingue assembleia ordinária e extraordinária.
type AGType string

const (
	AGOrdinary      AGType = "Ordinaire"
	AGExtraordinary AGType = "Extraordinaire"
)

// MajorityType é a regra de maioria aplicável à resolução.
type MajorityType string

const (
	MajoritySimple   MajorityType = "MAJORITE_SIMPLE"
	MajorityAbsolute MajorityType = "MAJORITE_ABSOLUE"
	Unanimity        MajorityType = "UNANIMITE"
)

// VoteStatus é o resultado derivado da resolução.
type VoteStatus string

const (
	VotePending  VoteStatus = "En attente"
	VoteAdopted  VoteStatus = "Adoptée"
	VoteRejected VoteStatus = "Rejetée"
)

// PresenceStatus registra presença na assembleia.
type PresenceStatus string

const (
	Present     PresenceStatus = "Présent"
	Represented PresenceStatus = "Représenté"
	Absent      PresenceStatus = "Absent"
)

// Resolution traz as apurações em votos e tantièmes.
type Resolution struct {
	ID             string       `json:"id" validate:"required"`
	AGID           string       `json:"ag_id" validate:"required"`
	Title          string       `json:"title" validate:"required"`
	Description    string       `json:"description"`
	Type           MajorityType `json:"type" validate:"required,oneof=MAJORITE_SIMPLE MAJORITE_ABSOLUE UNANIMITE"`
	VotesFor       int          `json:"votes_for" validate:"gte=0"`
	SharesFor      int          `json:"tantiemes_for" validate:"gte=0"`
	VotesAgainst   int          `json:"votes_against" validate:"gte=0"`
	SharesAgainst  int          `json:"tantiemes_against" validate:"gte=0"`
	VotesAbstain   int          `json:"votes_abstain" validate:"gte=0"`
	SharesAbstain  int          `json:"tantiemes_abstain" validate:"gte=0"`
	RecordedStatus VoteStatus   `json:"status,omitempty"`
}

// SharesExpressed soma os tantièmes exprimidos.
func (r Resolution) SharesExpressed() int {
	return r.SharesFor + r.SharesAgainst + r.SharesAbstain
}

// Participant liga um coproprietário à assembleia.
type Participant struct {
	ID          string         `json:"id" validate:"required"`
	AGID        string         `json:"ag_id" validate:"required"`
	UserID      string         `json:"user_id" validate:"required"`
	LotIDs      []string       `json:"lot_ids"`
	TotalShares int            `json:"total_tantiemes" validate:"gte=0"`
	Status      PresenceStatus `json:"status" validate:"required,oneof=Présent Représenté Absent"`
	ProxyName   string         `json:"proxy_name,omitempty"`
	ProxyDocURL string         `json:"proxy_doc_url,omitempty"`
}

// AGEvent é uma assembleia geral.
type AGEvent struct {
	ID                 string        `json:"id" validate:"required"`
	CoproprieteID      string        `json:"copropriete_id" validate:"required"`
	Title              string        `json:"title" validate:"required"`
	Type               AGType        `json:"type" validate:"required,oneof=Ordinaire Extraordinaire"`
	Date               Timestamp     `json:"date" validate:"required"`
	Location           string        `json:"location"`
	Description        string        `json:"description,omitempty"`
	Status             AGStatus      `json:"status" validate:"required,oneof=Brouillon Planifiée Convoquée 'En cours' Terminée Clôturée"`
	ConvocationURL     string        `json:"convocation_url,omitempty"`
	MinutesURL         string        `json:"minutes_url,omitempty"`
	AttendanceSheetURL string        `json:"attendance_sheet_url,omitempty"`
	Resolutions        []Resolution  `json:"resolutions" validate:"dive"`
	Participants       []Participant `json:"participants" validate:"dive"`
}
