// Package payment implements the tender collection workflow for one sale: a
// small state machine that accumulates tender entries against the payable
// amount, routes cash overpayment to change, rejects card overpayment, and
// declares the sale settled once the remaining balance is within the
// settlement tolerance.
package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/domain/money"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

// State is the workflow position of a payment session.
type State int

const (
	// AwaitingTenderSelection accepts SelectTenderKind and RemoveTender.
	AwaitingTenderSelection State = iota
	// TenderKindChosen exposes candidate instruments for an ambiguous kind.
	TenderKindChosen
	// AwaitingAmountEntry has an instrument bound and accepts SubmitAmount.
	AwaitingAmountEntry
	// Settled means the balance is within tolerance; Finalize and
	// RemoveTender remain valid until finalization.
	Settled
)

func (s State) String() string {
	names := [...]string{"AwaitingTenderSelection", "TenderKindChosen", "AwaitingAmountEntry", "Settled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "AwaitingTenderSelection"
	}
	return names[s]
}

// Instrument is one configured payment instrument from the catalog.
type Instrument struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Kind        enum.TenderKind `json:"kind"`
}

// TenderEntry is one payment applied toward the sale.
// AmountApplied + ChangeGiven always equals AmountEntered; change is only
// ever nonzero for cash-equivalent kinds.
type TenderEntry struct {
	Instrument    Instrument      `json:"instrument"`
	AmountEntered decimal.Decimal `json:"amount_entered"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	ChangeGiven   decimal.Decimal `json:"change_given"`
}

// Result is the immutable outcome of a finalized session.
type Result struct {
	Entries         []TenderEntry   `json:"entries"`
	AmountCollected decimal.Decimal `json:"amount_collected"`
	TotalChange     decimal.Decimal `json:"total_change"`
}

// TotalFunc supplies the current payable amount. The session reads it on
// every operation instead of freezing the target at start, so a sale edited
// mid-payment is always reconciled against its live total.
type TotalFunc func() decimal.Decimal

// Session collects tenders for one sale. It is owned by a single register
// screen for its lifetime and is not safe for concurrent use.
type Session struct {
	total       TotalFunc
	instruments []Instrument
	state       State
	candidates  []Instrument
	bound       *Instrument
	entries     []TenderEntry
	finalized   bool
}

// NewSession creates a payment session over the configured instrument
// catalog. total must return the sale's current grand total.
func NewSession(total TotalFunc, instruments []Instrument) *Session {
	return &Session{
		total:       total,
		instruments: instruments,
		state:       AwaitingTenderSelection,
	}
}

// State returns the current workflow state, reevaluating settlement against
// the live total first.
func (s *Session) State() State {
	s.resettle()
	return s.state
}

// Entries returns a copy of the tender entries applied so far.
func (s *Session) Entries() []TenderEntry {
	out := make([]TenderEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Candidates returns the instrument candidates exposed in TenderKindChosen.
func (s *Session) Candidates() []Instrument {
	out := make([]Instrument, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// AmountCollected is the sum of applied amounts.
func (s *Session) AmountCollected() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.entries {
		sum = sum.Add(e.AmountApplied)
	}
	return sum
}

// TotalChange is the sum of change given across entries.
func (s *Session) TotalChange() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.entries {
		sum = sum.Add(e.ChangeGiven)
	}
	return sum
}

// BalanceRemaining is the live grand total minus the amount collected.
func (s *Session) BalanceRemaining() decimal.Decimal {
	return s.total().Sub(s.AmountCollected())
}

// SelectTenderKind starts a tender entry. A kind with exactly one configured
// instrument binds it and advances straight to amount entry; a kind with
// several exposes them for explicit choice.
func (s *Session) SelectTenderKind(kind enum.TenderKind) error {
	s.resettle()
	if s.finalized || s.state != AwaitingTenderSelection {
		return apperror.NewConflictError("Tender selection is not available in state " + s.state.String())
	}

	var matches []Instrument
	for _, in := range s.instruments {
		if in.Kind == kind {
			matches = append(matches, in)
		}
	}

	switch len(matches) {
	case 0:
		return apperror.NewNotFoundError("Tender instrument for kind " + kind.String())
	case 1:
		in := matches[0]
		s.bound = &in
		s.state = AwaitingAmountEntry
	default:
		s.candidates = matches
		s.state = TenderKindChosen
	}
	return nil
}

// ChooseInstrument resolves an ambiguous kind selection.
func (s *Session) ChooseInstrument(id uuid.UUID) error {
	if s.state != TenderKindChosen {
		return apperror.NewConflictError("No instrument choice is pending")
	}
	for _, in := range s.candidates {
		if in.ID == id {
			bound := in
			s.bound = &bound
			s.candidates = nil
			s.state = AwaitingAmountEntry
			return nil
		}
	}
	return apperror.NewNotFoundError("Candidate instrument")
}

// SubmitAmount applies a tender of the entered amount through the bound
// instrument. Cash-equivalent instruments may exceed the remaining balance,
// with the excess routed to change; every other kind is rejected over
// balance. On success the session returns to tender selection, or settles.
func (s *Session) SubmitAmount(amount decimal.Decimal) error {
	if s.state != AwaitingAmountEntry || s.bound == nil {
		return apperror.NewConflictError("No tender amount is pending")
	}
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount
	}

	balance := s.BalanceRemaining()
	entry := TenderEntry{
		Instrument:    *s.bound,
		AmountEntered: amount,
		AmountApplied: amount,
		ChangeGiven:   decimal.Zero,
	}

	if amount.GreaterThan(balance) {
		if !s.bound.Kind.CashEquivalent() {
			return apperror.ErrExceedsBalance
		}
		entry.AmountApplied = balance
		entry.ChangeGiven = amount.Sub(balance)
	}

	s.entries = append(s.entries, entry)
	s.bound = nil
	s.state = AwaitingTenderSelection
	s.resettle()
	return nil
}

// CancelEntry abandons the tender currently being entered, keeping the
// entries applied so far. Valid while a kind or amount entry is pending.
func (s *Session) CancelEntry() error {
	if s.state != TenderKindChosen && s.state != AwaitingAmountEntry {
		return apperror.NewConflictError("No tender entry to cancel")
	}
	s.bound = nil
	s.candidates = nil
	s.state = AwaitingTenderSelection
	s.resettle()
	return nil
}

// RemoveTender removes an applied entry. Valid from tender selection and
// from Settled before finalization; removing from Settled reopens the
// session.
func (s *Session) RemoveTender(index int) error {
	s.resettle()
	if s.finalized {
		return apperror.NewConflictError("Payment has already been finalized")
	}
	if s.state != AwaitingTenderSelection && s.state != Settled {
		return apperror.NewConflictError("Cannot remove a tender while an entry is in progress")
	}
	if index < 0 || index >= len(s.entries) {
		return apperror.NewNotFoundError("Tender entry")
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.resettle()
	return nil
}

// Finalize closes the session and returns the immutable tender list with the
// collected and change totals. Valid only from Settled: a pending kind or
// amount entry must be submitted or cancelled first, even when the live
// balance has already dropped within tolerance.
func (s *Session) Finalize() (*Result, error) {
	if s.finalized {
		return nil, apperror.NewConflictError("Payment has already been finalized")
	}
	s.resettle()
	if s.state == TenderKindChosen || s.state == AwaitingAmountEntry {
		return nil, apperror.NewConflictError("Cannot finalize while a tender entry is in progress")
	}
	if s.state != Settled {
		return nil, apperror.ErrBalanceNotZero
	}
	s.finalized = true

	return &Result{
		Entries:         s.Entries(),
		AmountCollected: s.AmountCollected(),
		TotalChange:     s.TotalChange(),
	}, nil
}

// Finalized reports whether Finalize has succeeded.
func (s *Session) Finalized() bool {
	return s.finalized
}

// resettle moves between AwaitingTenderSelection and Settled as the live
// balance crosses the tolerance. Mid-entry states are left alone.
func (s *Session) resettle() {
	if s.finalized {
		return
	}
	switch s.state {
	case AwaitingTenderSelection:
		if money.Settled(s.BalanceRemaining()) {
			s.state = Settled
		}
	case Settled:
		if !money.Settled(s.BalanceRemaining()) {
			s.state = AwaitingTenderSelection
		}
	}
}
