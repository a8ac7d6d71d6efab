package ledger

import (
	"fmt"

	"github.com/poobet/roulette/internal/domain"
	"github.com/shopspring/decimal"
)

// AuditReport holds the outcome of replaying an account's journal.
type AuditReport struct {
	PlayerID   int64
	EntryCount int
	Chips      int64
	Credit     decimal.Decimal
	Invariants []InvariantCheck
	AllPassed  bool
}

// InvariantCheck records a single invariant validation.
type InvariantCheck struct {
	Name   string
	Passed bool
	Detail string
}

// Audit replays the journal from an empty account and validates 3 invariants
// against the live balances.
//
// Invariants:
//  1. Balance non-negativity: chips and credit >= 0
//  2. Snapshot parity: the last entry's snapshot matches the live balances
//  3. Replay parity: summing every delta reproduces each snapshot in turn
func Audit(a *Account) AuditReport {
	a.mu.Lock()
	chips, credit := a.chips, a.credit
	journal := append([]domain.Transaction(nil), a.journal...)
	a.mu.Unlock()

	report := AuditReport{
		PlayerID:   a.playerID,
		EntryCount: len(journal),
		Chips:      chips,
		Credit:     credit,
	}

	// 1. Non-negativity
	report.Invariants = append(report.Invariants, InvariantCheck{
		Name:   "balance_non_negative",
		Passed: chips >= 0 && !credit.IsNegative(),
		Detail: fmt.Sprintf("chips=%d credit=%s", chips, credit.StringFixed(2)),
	})

	// 2. Snapshot parity
	snapshot := InvariantCheck{Name: "snapshot_parity", Passed: true, Detail: "empty journal"}
	if n := len(journal); n > 0 {
		last := journal[n-1]
		snapshot.Passed = last.ChipsAfter == chips && last.CreditAfter.Equal(credit)
		snapshot.Detail = fmt.Sprintf("last entry chips=%d credit=%s", last.ChipsAfter, last.CreditAfter.StringFixed(2))
	}
	report.Invariants = append(report.Invariants, snapshot)

	// 3. Replay parity
	replay := InvariantCheck{Name: "replay_parity", Passed: true}
	var runChips int64
	runCredit := decimal.Zero
	for i, tx := range journal {
		runChips += tx.Chips
		runCredit = runCredit.Add(tx.Credit)
		if runChips != tx.ChipsAfter || !runCredit.Equal(tx.CreditAfter) {
			replay.Passed = false
			replay.Detail = fmt.Sprintf("entry %d (%s) replays to chips=%d credit=%s, snapshot chips=%d credit=%s",
				i, tx.Type, runChips, runCredit.StringFixed(2), tx.ChipsAfter, tx.CreditAfter.StringFixed(2))
			break
		}
	}
	if replay.Passed {
		replay.Passed = runChips == chips && runCredit.Equal(credit)
		replay.Detail = fmt.Sprintf("replayed %d entries to chips=%d credit=%s", len(journal), runChips, runCredit.StringFixed(2))
	}
	report.Invariants = append(report.Invariants, replay)

	report.AllPassed = true
	for _, inv := range report.Invariants {
		if !inv.Passed {
			report.AllPassed = false
		}
	}
	return report
}
