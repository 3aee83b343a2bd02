package finance

import (
	"slices"

	"github.com/betterhouse/syndic/internal/copro"
)

// Summary resume os registros financeiros do período.
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpense  float64 `json:"total_expense"`
	TotalPending  float64 `json:"total_pending"`
	Balance       float64 `json:"balance"`
	RecoveryRate  float64 `json:"recovery_rate"`
	RecoveryLabel string  `json:"recovery_label"`
}

// Summarize: receitas pagas, todas as despesas e créditos pendentes.
func Summarize(records []copro.FinancialRecord) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case copro.Credit:
			if r.Status == copro.Paid {
				s.TotalIncome += r.Amount
			} else {
				s.TotalPending += r.Amount
			}
		case copro.Debit:
			s.TotalExpense += r.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.RecoveryRate = RecoveryRate(s.TotalIncome, s.TotalPending)
	s.RecoveryLabel = FormatRate(s.RecoveryRate)
	return s
}

// RecoveryRate devolve income/(income+pending) em [0,1], ou 0 sem base.
func RecoveryRate(income, pending float64) float64 {
	den := income + pending
	if den <= 0 {
		return 0
	}
	return income / den
}

// UserBalance soma os créditos não pagos dos lotes do usuário.
func UserBalance(records []copro.FinancialRecord, ownedLotIDs []string) float64 {
	var total float64
	for _, r := range records {
		if r.Type != copro.Credit || !r.IsUnpaid() || r.RelatedLotID == "" {
			continue
		}
		if slices.Contains(ownedLotIDs, r.RelatedLotID) {
			total += r.Amount
		}
	}
	return total
}

// StatusBreakdown conta registros por status de pagamento.
func StatusBreakdown(records []copro.FinancialRecord) map[copro.PaymentStatus]int {
	out := map[copro.PaymentStatus]int{
		copro.Paid:    0,
		copro.Pending: 0,
		copro.Late:    0,
	}
	for _, r := range records {
		out[r.Status]++
	}
	return out
}

// FundCalls devolve os registros da categoria "Appel de fonds".
func FundCalls(records []copro.FinancialRecord) []copro.FinancialRecord {
	out := make([]copro.FinancialRecord, 0)
	for _, r := range records {
		if r.Category == copro.CategoryFundCall {
			out = append(out, r)
		}
	}
	return out
}
