package atm

import (
	"errors"
	"testing"
)

func TestDepositIncreasesBalance(t *testing.T) {
	teller := New(0)

	balance, err := teller.Deposit(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 50 {
		t.Errorf("expected balance 50, got %v", balance)
	}
	if teller.Balance() != 50 {
		t.Errorf("expected stored balance 50, got %v", teller.Balance())
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	teller := New(10)

	for _, amount := range []float64{0, -5} {
		if _, err := teller.Deposit(amount); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("deposit(%v): expected ErrNonPositiveAmount, got %v", amount, err)
		}
	}
	if teller.Balance() != 10 {
		t.Errorf("balance changed on rejected deposit: %v", teller.Balance())
	}
	if len(teller.History()) != 0 {
		t.Error("rejected deposit must not be recorded")
	}
}

func TestWithdrawGuardsBalance(t *testing.T) {
	teller := New(20)

	if _, err := teller.Withdraw(30); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if teller.Balance() != 20 {
		t.Errorf("failed withdrawal must leave balance intact, got %v", teller.Balance())
	}

	balance, err := teller.Withdraw(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Errorf("expected balance 0 after withdrawing everything, got %v", balance)
	}
}

func TestHistoryRecordsEachOperation(t *testing.T) {
	teller := New(0)
	teller.Deposit(100)
	teller.Withdraw(40)
	teller.Withdraw(500) // rejected, not recorded
	teller.Deposit(5)

	history := teller.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}

	expected := []Entry{
		{Kind: Deposit, Amount: 100},
		{Kind: Withdrawal, Amount: 40},
		{Kind: Deposit, Amount: 5},
	}
	for i, want := range expected {
		if history[i] != want {
			t.Errorf("entry %d: expected %+v, got %+v", i, want, history[i])
		}
	}

	// Mutating the returned slice must not touch the teller's log.
	history[0].Amount = 999
	if teller.History()[0].Amount != 100 {
		t.Error("History must return a copy")
	}
}

func TestEntryString(t *testing.T) {
	dep := Entry{Kind: Deposit, Amount: 12.5}
	if dep.String() != "Deposited: +$12.50" {
		t.Errorf("unexpected deposit format: %q", dep.String())
	}
	wd := Entry{Kind: Withdrawal, Amount: 3}
	if wd.String() != "Withdrew: -$3.00" {
		t.Errorf("unexpected withdrawal format: %q", wd.String())
	}
}
