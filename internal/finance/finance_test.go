package finance

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/store"
)

func TestSummarizeSeed(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	s := Summarize(snap.Records)
	assert.Equal(t, 7300.0, s.TotalIncome)
	assert.Equal(t, 9400.0, s.TotalExpense)
	assert.Equal(t, 126200.0, s.TotalPending)
	assert.Equal(t, -2100.0, s.Balance)
	assert.InDelta(t, 7300.0/133500.0, s.RecoveryRate, 1e-9)
	assert.Equal(t, "5 %", strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s.RecoveryLabel))
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	cases := [][]copro.FinancialRecord{
		nil,
		{{Type: copro.Debit, Amount: 10, Status: copro.Paid}},
		{{Type: copro.Credit, Amount: 10, Status: copro.Late}},
		{
			{Type: copro.Credit, Amount: 99.5, Status: copro.Paid},
			{Type: copro.Debit, Amount: 12.25, Status: copro.Pending},
			{Type: copro.Credit, Amount: 3, Status: copro.Cancelled},
		},
	}
	for _, records := range cases {
		s := Summarize(records)
		assert.Equal(t, s.TotalIncome-s.TotalExpense, s.Balance)
		assert.False(t, math.IsNaN(s.RecoveryRate))
		assert.False(t, math.IsInf(s.RecoveryRate, 0))
	}
}

func TestRecoveryRateZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, RecoveryRate(0, 0))
	assert.Equal(t, 1.0, RecoveryRate(50, 0))
	assert.Equal(t, 0.0, RecoveryRate(0, 50))
}

func TestUserBalanceIgnoresOtherLots(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	assert.Equal(t, 0.0, UserBalance(snap.Records, snap.OwnedLotIDs("u2")))
	assert.Equal(t, 6200.0, UserBalance(snap.Records, snap.OwnedLotIDs("u4")))
	assert.Equal(t, 0.0, UserBalance(snap.Records, snap.OwnedLotIDs("u3")))
	assert.Equal(t, 0.0, UserBalance(snap.Records, nil))
}

func TestFilterByTypeAndSearch(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	debits := Filter(snap.Records, Query{Type: "debit"})
	assert.Len(t, debits, 4)

	found := Filter(snap.Records, Query{Search: "otis"})
	require.Len(t, found, 1)
	assert.Equal(t, "f2", found[0].ID)

	assert.Len(t, Filter(snap.Records, Query{Type: "other"}), len(snap.Records))
}

func TestFundCallsAndBreakdown(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	calls := FundCalls(snap.Records)
	require.Len(t, calls, 1)
	assert.Equal(t, "f1", calls[0].ID)

	counts := StatusBreakdown(snap.Records)
	assert.Equal(t, 6, counts[copro.Paid])
	assert.Equal(t, 1, counts[copro.Pending])
	assert.Equal(t, 1, counts[copro.Late])
}

func TestLedgerBalances(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	report := Ledger(snap.Journal, snap.Accounts)
	assert.Equal(t, 270700.0, report.TotalDebit)
	assert.Equal(t, 270700.0, report.TotalCredit)
	assert.True(t, report.Balanced)

	var bank *AccountBalance
	for _, g := range report.Classes {
		for i := range g.Accounts {
			if g.Accounts[i].Code == "5141" {
				bank = &g.Accounts[i]
			}
		}
	}
	require.NotNil(t, bank)
	assert.Equal(t, 54300.0, bank.Debit)
	assert.Equal(t, 42700.0, bank.Credit)
	assert.Equal(t, 11600.0, bank.Balance)
	assert.Equal(t, copro.Class5, bank.Class)
}

func TestLedgerUnknownAccount(t *testing.T) {
	report := Ledger([]copro.JournalEntry{{ID: "x", AccountCode: "9999", Debit: 5}}, nil)
	require.Len(t, report.Classes, 1)
	assert.Equal(t, copro.UnknownName, report.Classes[0].Accounts[0].Name)
	assert.False(t, report.Balanced)
}

func TestBudgetReport(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	report := BudgetReport(snap.BudgetLines)
	assert.Equal(t, 351000.0, report.TotalEstimated)
	assert.Equal(t, 304000.0, report.TotalSpent)

	var over []string
	for _, row := range report.Rows {
		if row.OverBudget {
			over = append(over, row.ID)
		}
	}
	assert.Equal(t, []string{"b3"}, over)
	assert.Equal(t, 106.7, report.Rows[2].Consumption)

	empty := BudgetReport([]copro.BudgetLine{{ID: "z", EstimatedAmount: 0, SpentAmount: 10}})
	assert.Equal(t, 0.0, empty.Rows[0].Consumption)
}

func TestFormatAmount(t *testing.T) {
	label := normalizeSpaces(FormatAmount(120000))
	assert.Equal(t, "120 000 MAD", label)
}

func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}
