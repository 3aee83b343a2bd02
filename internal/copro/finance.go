package copro

// EntryType é o sentido do lançamento.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// PaymentStatus acompanha a quitação.
type PaymentStatus string

const (
	Paid      PaymentStatus = "Payé"
	Pending   PaymentStatus = "En attente"
	Late      PaymentStatus = "En retard"
	Cancelled PaymentStatus = "Annulé"
)

// CategoryFundCall marca os registros que geram vencimentos na agenda.
const CategoryFundCall = "Appel de fonds"

// FinancialRecord é um registro financeiro simplificado.
type FinancialRecord struct {
	ID            string        `json:"id" validate:"required"`
	Date          Timestamp     `json:"date" validate:"required"`
	Description   string        `json:"description"`
	Amount        float64       `json:"amount" validate:"gte=0"`
	Type          EntryType     `json:"type" validate:"required,oneof=DEBIT CREDIT"`
	Category      string        `json:"category"`
	Status        PaymentStatus `json:"status" validate:"required,oneof=Payé 'En attente' 'En retard' Annulé"`
	UserReference string        `json:"user_reference,omitempty"`
	ProofURL      string        `json:"proof_url,omitempty"`
	RelatedLotID  string        `json:"related_lot_id,omitempty"`
}

// IsUnpaid indica qualquer status diferente de pago.
func (r FinancialRecord) IsUnpaid() bool {
	return r.Status != Paid
}

// AccountingClass agrupa contas do plano contábil de síndicos.
type AccountingClass string

const (
	Class1 AccountingClass = "Classe 1 - Financement Permanent"
	Class2 AccountingClass = "Classe 2 - Actif Immobilisé"
	Class3 AccountingClass = "Classe 3 - Actif Circulant"
	Class4 AccountingClass = "Classe 4 - Passif Circulant"
	Class5 AccountingClass = "Classe 5 - Trésorerie"
	Class6 AccountingClass = "Classe 6 - Charges"
	Class7 AccountingClass = "Classe 7 - Produits"
)

// Account é uma conta do plano contábil.
type Account struct {
	Code  string          `json:"code" validate:"required,numeric"`
	Name  string          `json:"name" validate:"required"`
	Class AccountingClass `json:"class" validate:"required"`
	Type  EntryType       `json:"type" validate:"required,oneof=DEBIT CREDIT"`
}

// JournalEntry é uma linha do livro diário.
type JournalEntry struct {
	ID          string    `json:"id" validate:"required"`
	Date        Timestamp `json:"date" validate:"required"`
	Description string    `json:"description"`
	AccountCode string    `json:"account_code" validate:"required"`
	Debit       float64   `json:"debit" validate:"gte=0"`
	Credit      float64   `json:"credit" validate:"gte=0"`
	Reference   string    `json:"reference,omitempty"`
}

// BudgetLine compara previsto e realizado.
type BudgetLine struct {
	ID              string  `json:"id" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	EstimatedAmount float64 `json:"estimated_amount" validate:"gte=0"`
	SpentAmount     float64 `json:"spent_amount" validate:"gte=0"`
	Year            int     `json:"year" validate:"gte=1900"`
}
