// Package atm implements a single-account teller: one balance and an
// in-memory history of deposits and withdrawals. The withdrawal guard mirrors
// the stock ledger's rule that a balance never goes negative.
package atm

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

type EntryKind string

const (
	Deposit    EntryKind = "deposit"
	Withdrawal EntryKind = "withdrawal"
)

type Entry struct {
	Kind   EntryKind
	Amount float64
}

func (e Entry) String() string {
	if e.Kind == Withdrawal {
		return fmt.Sprintf("Withdrew: -$%.2f", e.Amount)
	}
	return fmt.Sprintf("Deposited: +$%.2f", e.Amount)
}

type Teller struct {
	balance float64
	history []Entry
}

func New(initialBalance float64) *Teller {
	return &Teller{balance: initialBalance}
}

func (t *Teller) Balance() float64 {
	return t.balance
}

func (t *Teller) Deposit(amount float64) (float64, error) {
	if amount <= 0 {
		return t.balance, ErrNonPositiveAmount
	}
	t.balance += amount
	t.history = append(t.history, Entry{Kind: Deposit, Amount: amount})
	return t.balance, nil
}

func (t *Teller) Withdraw(amount float64) (float64, error) {
	if amount <= 0 {
		return t.balance, ErrNonPositiveAmount
	}
	if amount > t.balance {
		return t.balance, ErrInsufficientFunds
	}
	t.balance -= amount
	t.history = append(t.history, Entry{Kind: Withdrawal, Amount: amount})
	return t.balance, nil
}

// History returns a copy so callers cannot edit the log.
func (t *Teller) History() []Entry {
	out := make([]Entry, len(t.history))
	copy(out, t.history)
	return out
}
