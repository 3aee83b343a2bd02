package copro

import "strings"

// ShareDenominator é o denominador fixo dos tantièmes.
const ShareDenominator = 1000

// UnknownName substitui referências cruzadas ausentes na exibição.
const UnknownName = "Inconnu"

// Role identifica o perfil do usuário.
type Role string

const (
	RoleSyndic  Role = "SYNDIC"
	RoleCoOwner Role = "COPROPRIETAIRE"
)

// ParseRole normaliza o papel recebido em token ou query.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleSyndic:
		return RoleSyndic, true
	case RoleCoOwner:
		return RoleCoOwner, true
	}
	return "", false
}

// User representa síndico ou coproprietário.
type User struct {
	ID                    string   `json:"id" validate:"required"`
	Name                  string   `json:"name" validate:"required"`
	Email                 string   `json:"email" validate:"omitempty,email"`
	Phone                 string   `json:"phone,omitempty"`
	Role                  Role     `json:"role" validate:"required,oneof=SYNDIC COPROPRIETAIRE"`
	AvatarURL             string   `json:"avatar_url,omitempty"`
	IsOccupant            bool     `json:"is_occupant"`
	CorrespondenceAddress string   `json:"correspondence_address,omitempty"`
	LotIDs                []string `json:"lot_ids,omitempty"`
}

// IsSyndic indica papel administrativo.
func (u User) IsSyndic() bool {
	return u.Role == RoleSyndic
}

// Copropriete descreve o condomínio gerido.
type Copropriete struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Description      string   `json:"description,omitempty"`
	ConstructionYear int      `json:"construction_year,omitempty"`
	AnnualBudget     float64  `json:"annual_budget" validate:"gte=0"`
	TotalLots        int      `json:"total_lots" validate:"gte=0"`
	BankAccount      string   `json:"bank_account"`
	FiscalYearStart  string   `json:"fiscal_year_start"`
	RegulationURL    string   `json:"regulation_url,omitempty"`
	Services         []string `json:"services,omitempty"`
}

// Building representa um bloco do condomínio.
type Building struct {
	ID            string `json:"id" validate:"required"`
	CoproprieteID string `json:"copropriete_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Floors        int    `json:"floors" validate:"gte=0"`
	Description   string `json:"description,omitempty"`
}

// Lot representa uma unidade com seus tantièmes.
type Lot struct {
	ID             string  `json:"id" validate:"required"`
	CoproprieteID  string  `json:"copropriete_id" validate:"required"`
	BuildingID     string  `json:"building_id" validate:"required"`
	OwnerID        string  `json:"owner_id" validate:"required"`
	Number         string  `json:"numero" validate:"required"`
	Type           string  `json:"type" validate:"required,oneof=Appartement Commerce Garage Cave"`
	Usage          string  `json:"usage" validate:"omitempty,oneof=Habitation Professionnel"`
	Floor          int     `json:"etage"`
	Area           float64 `json:"surface" validate:"gte=0"`
	SharesGeneral  int     `json:"tantiemes_generaux" validate:"gte=0,lte=1000"`
	SharesElevator int     `json:"tantiemes_ascenseur,omitempty" validate:"gte=0,lte=1000"`
	SharesHeating  int     `json:"tantiemes_chauffage,omitempty" validate:"gte=0,lte=1000"`
	Notes          string  `json:"notes,omitempty"`
}

// TechnicalInfo resume o dossiê técnico de um equipamento.
type TechnicalInfo struct {
	ID              string     `json:"id" validate:"required"`
	Category        string     `json:"category" validate:"required"`
	Description     string     `json:"description"`
	LastMaintenance *Timestamp `json:"last_maintenance,omitempty"`
	ProviderID      string     `json:"provider_id,omitempty"`
	Status          string     `json:"status" validate:"oneof=Bon Moyen Critique"`
}

// Provider representa um prestador de serviço.
type Provider struct {
	ID                 string  `json:"id" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	ServiceType        string  `json:"service_type"`
	Email              string  `json:"email" validate:"omitempty,email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address,omitempty"`
	Rating             float64 `json:"rating" validate:"gte=0,lte=5"`
	Status             string  `json:"status" validate:"oneof=Actif Inactif"`
	InterventionsCount int     `json:"interventions_count" validate:"gte=0"`
}

// IsActive indica prestador ativo.
func (p Provider) IsActive() bool {
	return p.Status == ProviderActive
}

const (
	ProviderActive   = "Actif"
	ProviderInactive = "Inactif"
)

// Contract vincula prestador e condomínio.
type Contract struct {
	ID          string    `json:"id" validate:"required"`
	ProviderID  string    `json:"provider_id" validate:"required"`
	StartDate   Timestamp `json:"start_date" validate:"required"`
	EndDate     Timestamp `json:"end_date" validate:"required"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Description string    `json:"description"`
	DocumentURL string    `json:"document_url,omitempty"`
	Status      string    `json:"status" validate:"oneof=Actif Expiré Résilié"`
}

// Settings agrega parâmetros do condomínio.
type Settings struct {
	ID                   string  `json:"id"`
	CoproprieteID        string  `json:"copropriete_id"`
	Currency             string  `json:"currency" validate:"omitempty,oneof=MAD"`
	Language             string  `json:"language" validate:"omitempty,oneof=FR AR"`
	FiscalYearStart      string  `json:"fiscal_year_start"`
	FiscalYearEnd        string  `json:"fiscal_year_end"`
	PenaltyRate          float64 `json:"penalty_rate" validate:"gte=0"`
	AutoPublishDocuments bool    `json:"auto_publish_documents"`
}

// SyndicProfile identifica o escritório do síndico.
type SyndicProfile struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LogoURL     string `json:"logo_url,omitempty"`
	RIB         string `json:"rib"`
}

// Template descreve modelos de comunicação e documentos.
type Template struct {
	ID        string   `json:"id" validate:"required"`
	Type      string   `json:"type,omitempty"`
	Title     string   `json:"title"`
	Subject   string   `json:"subject,omitempty"`
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

// SecurityLog registra acessos exibidos nas configurações.
type SecurityLog struct {
	ID     string    `json:"id" validate:"required"`
	Date   Timestamp `json:"date" validate:"required"`
	Device string    `json:"device"`
	IP     string    `json:"ip" validate:"omitempty,ip"`
	Status string    `json:"status" validate:"oneof=Success Failed"`
}
