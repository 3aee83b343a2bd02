package finance

import (
	"math"
	"sort"

	"github.com/betterhouse/syndic/internal/copro"
)

// AccountBalance acumula os movimentos de uma conta.
type AccountBalance struct {
	Code    string                `json:"code"`
	Name    string                `json:"name"`
	Class   copro.AccountingClass `json:"class"`
	Debit   float64               `json:"debit"`
	Credit  float64               `json:"credit"`
	Balance float64               `json:"balance"`
}

// ClassGroup agrupa as contas de uma classe do plano.
type ClassGroup struct {
	Class    copro.AccountingClass `json:"class"`
	Accounts []AccountBalance      `json:"accounts"`
	Debit    float64               `json:"debit"`
	Credit   float64               `json:"credit"`
}

// LedgerReport é o balancete derivado do diário.
type LedgerReport struct {
	Classes     []ClassGroup `json:"classes"`
	TotalDebit  float64      `json:"total_debit"`
	TotalCredit float64      `json:"total_credit"`
	Balanced    bool         `json:"balanced"`
}

// Ledger soma o diário por conta. Contas sem lançamento são omitidas;
// códigos fora do plano aparecem com nome copro.UnknownName.
func Ledger(entries []copro.JournalEntry, accounts []copro.Account) LedgerReport {
	plan := make(map[string]copro.Account, len(accounts))
	for _, a := range accounts {
		plan[a.Code] = a
	}

	balances := make(map[string]*AccountBalance)
	var report LedgerReport
	for _, e := range entries {
		b, ok := balances[e.AccountCode]
		if !ok {
			acc, known := plan[e.AccountCode]
			if !known {
				acc = copro.Account{Code: e.AccountCode, Name: copro.UnknownName}
			}
			b = &AccountBalance{Code: acc.Code, Name: acc.Name, Class: acc.Class}
			balances[e.AccountCode] = b
		}
		b.Debit += e.Debit
		b.Credit += e.Credit
		report.TotalDebit += e.Debit
		report.TotalCredit += e.Credit
	}

	groups := make(map[copro.AccountingClass]*ClassGroup)
	for _, b := range balances {
		b.Balance = b.Debit - b.Credit
		g, ok := groups[b.Class]
		if !ok {
			g = &ClassGroup{Class: b.Class}
			groups[b.Class] = g
		}
		g.Accounts = append(g.Accounts, *b)
		g.Debit += b.Debit
		g.Credit += b.Credit
	}

	report.Classes = make([]ClassGroup, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.Accounts, func(i, j int) bool { return g.Accounts[i].Code < g.Accounts[j].Code })
		report.Classes = append(report.Classes, *g)
	}
	sort.Slice(report.Classes, func(i, j int) bool { return report.Classes[i].Class < report.Classes[j].Class })

	report.Balanced = math.Abs(report.TotalDebit-report.TotalCredit) < 0.005
	return report
}

// BudgetRow compara previsto e realizado de uma categoria.
type BudgetRow struct {
	copro.BudgetLine
	Variance    float64 `json:"variance"`
	Consumption float64 `json:"consumption_percent"`
	OverBudget  bool    `json:"over_budget"`
}

// BudgetSummary traz as linhas e os totais do orçamento.
type BudgetSummary struct {
	Rows           []BudgetRow `json:"rows"`
	TotalEstimated float64     `json:"total_estimated"`
	TotalSpent     float64     `json:"total_spent"`
	Consumption    float64     `json:"consumption_percent"`
}

// BudgetReport calcula variação e consumo; previsto zero dá consumo 0.
func BudgetReport(lines []copro.BudgetLine) BudgetSummary {
	out := BudgetSummary{Rows: make([]BudgetRow, 0, len(lines))}
	for _, l := range lines {
		out.Rows = append(out.Rows, BudgetRow{
			BudgetLine:  l,
			Variance:    l.EstimatedAmount - l.SpentAmount,
			Consumption: percent(l.SpentAmount, l.EstimatedAmount),
			OverBudget:  l.SpentAmount > l.EstimatedAmount,
		})
		out.TotalEstimated += l.EstimatedAmount
		out.TotalSpent += l.SpentAmount
	}
	out.Consumption = percent(out.TotalSpent, out.TotalEstimated)
	return out
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(part/whole*1000) / 10
}
