package payment

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedTotal(s string) TotalFunc {
	d := dec(s)
	return func() decimal.Decimal { return d }
}

var (
	cash   = Instrument{ID: uuid.New(), Description: "Dinheiro", Kind: enum.TenderKindCash}
	credit = Instrument{ID: uuid.New(), Description: "Cartão de Crédito", Kind: enum.TenderKindCreditCard}
	debit  = Instrument{ID: uuid.New(), Description: "Cartão de Débito", Kind: enum.TenderKindDebitCard}
	pix    = Instrument{ID: uuid.New(), Description: "PIX", Kind: enum.TenderKindTransfer}
	pixAlt = Instrument{ID: uuid.New(), Description: "PIX Conta 2", Kind: enum.TenderKindTransfer}
)

func catalog() []Instrument {
	return []Instrument{cash, credit, debit, pix, pixAlt}
}

func mustSelect(t *testing.T, s *Session, kind enum.TenderKind) {
	t.Helper()
	if err := s.SelectTenderKind(kind); err != nil {
		t.Fatalf("SelectTenderKind(%s): %v", kind, err)
	}
}

func mustSubmit(t *testing.T, s *Session, amount string) {
	t.Helper()
	if err := s.SubmitAmount(dec(amount)); err != nil {
		t.Fatalf("SubmitAmount(%s): %v", amount, err)
	}
}

func TestCashOverpaymentRoutesChange(t *testing.T) {
	// grandTotal 27.00, cash 30.00 -> applied 27.00, change 3.00, settled.
	s := NewSession(fixedTotal("27.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "30.00")

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !entries[0].AmountApplied.Equal(dec("27.00")) {
		t.Errorf("AmountApplied = %s, want 27.00", entries[0].AmountApplied)
	}
	if !entries[0].ChangeGiven.Equal(dec("3.00")) {
		t.Errorf("ChangeGiven = %s, want 3.00", entries[0].ChangeGiven)
	}
	if !entries[0].AmountApplied.Add(entries[0].ChangeGiven).Equal(entries[0].AmountEntered) {
		t.Error("applied + change != entered")
	}
	if s.State() != Settled {
		t.Errorf("state = %s, want Settled", s.State())
	}
	if !s.BalanceRemaining().IsZero() {
		t.Errorf("balance = %s, want 0", s.BalanceRemaining())
	}
}

func TestCardOverBalanceRejected(t *testing.T) {
	s := NewSession(fixedTotal("50.00"), catalog())

	mustSelect(t, s, enum.TenderKindCreditCard)
	err := s.SubmitAmount(dec("60.00"))
	if !errors.Is(err, apperror.ErrExceedsBalance) {
		t.Fatalf("SubmitAmount over balance: err = %v, want ErrExceedsBalance", err)
	}
	if len(s.Entries()) != 0 {
		t.Error("rejected tender must not append an entry")
	}

	// Exact amount succeeds with no change.
	mustSubmit(t, s, "50.00")
	if s.State() != Settled {
		t.Errorf("state = %s, want Settled", s.State())
	}
	if !s.TotalChange().IsZero() {
		t.Errorf("TotalChange = %s, want 0", s.TotalChange())
	}
}

func TestSplitTender(t *testing.T) {
	// grandTotal 100: cash 40 then cash 60.
	s := NewSession(fixedTotal("100.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "40.00")

	if !s.BalanceRemaining().Equal(dec("60.00")) {
		t.Errorf("balance = %s, want 60.00", s.BalanceRemaining())
	}
	if s.State() != AwaitingTenderSelection {
		t.Errorf("state = %s, want AwaitingTenderSelection", s.State())
	}

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "60.00")

	if !s.BalanceRemaining().IsZero() {
		t.Errorf("balance = %s, want 0", s.BalanceRemaining())
	}
	if s.State() != Settled {
		t.Errorf("state = %s, want Settled", s.State())
	}
	if !s.TotalChange().IsZero() {
		t.Errorf("TotalChange = %s, want 0", s.TotalChange())
	}
}

func TestInvalidAmounts(t *testing.T) {
	s := NewSession(fixedTotal("10.00"), catalog())
	mustSelect(t, s, enum.TenderKindCash)

	for _, amount := range []string{"0", "-5"} {
		if err := s.SubmitAmount(dec(amount)); !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Errorf("SubmitAmount(%s): err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestKindDisambiguation(t *testing.T) {
	s := NewSession(fixedTotal("10.00"), catalog())

	// Two transfer instruments configured: must go through explicit choice.
	mustSelect(t, s, enum.TenderKindTransfer)
	if s.State() != TenderKindChosen {
		t.Fatalf("state = %s, want TenderKindChosen", s.State())
	}
	if len(s.Candidates()) != 2 {
		t.Fatalf("candidates = %d, want 2", len(s.Candidates()))
	}

	if err := s.SubmitAmount(dec("10.00")); err == nil {
		t.Error("SubmitAmount without bound instrument must fail")
	}

	if err := s.ChooseInstrument(pixAlt.ID); err != nil {
		t.Fatalf("ChooseInstrument: %v", err)
	}
	if s.State() != AwaitingAmountEntry {
		t.Errorf("state = %s, want AwaitingAmountEntry", s.State())
	}

	mustSubmit(t, s, "10.00")
	if got := s.Entries()[0].Instrument.ID; got != pixAlt.ID {
		t.Errorf("bound instrument = %s, want %s", got, pixAlt.ID)
	}
}

func TestSingleInstrumentKindAutoAdvances(t *testing.T) {
	s := NewSession(fixedTotal("10.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	if s.State() != AwaitingAmountEntry {
		t.Errorf("state = %s, want AwaitingAmountEntry", s.State())
	}
}

func TestUnknownKindLeavesStateUnchanged(t *testing.T) {
	s := NewSession(fixedTotal("10.00"), catalog())

	if err := s.SelectTenderKind(enum.TenderKindVoucher); err == nil {
		t.Fatal("selecting a kind with no instruments must fail")
	}
	if s.State() != AwaitingTenderSelection {
		t.Errorf("state = %s, want AwaitingTenderSelection", s.State())
	}
}

func TestCancelEntryPreservesApplied(t *testing.T) {
	s := NewSession(fixedTotal("100.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "40.00")
	mustSelect(t, s, enum.TenderKindCash)

	if err := s.CancelEntry(); err != nil {
		t.Fatalf("CancelEntry: %v", err)
	}
	if s.State() != AwaitingTenderSelection {
		t.Errorf("state = %s, want AwaitingTenderSelection", s.State())
	}
	if len(s.Entries()) != 1 {
		t.Errorf("entries = %d, want 1 (prior tender preserved)", len(s.Entries()))
	}
}

func TestRemoveTenderRecomputesBalance(t *testing.T) {
	s := NewSession(fixedTotal("100.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "40.00")
	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "60.00")

	if s.State() != Settled {
		t.Fatalf("state = %s, want Settled", s.State())
	}

	// Removing from Settled before finalize reopens the session.
	if err := s.RemoveTender(1); err != nil {
		t.Fatalf("RemoveTender: %v", err)
	}
	if s.State() != AwaitingTenderSelection {
		t.Errorf("state = %s, want AwaitingTenderSelection", s.State())
	}
	if !s.BalanceRemaining().Equal(dec("60.00")) {
		t.Errorf("balance = %s, want 60.00", s.BalanceRemaining())
	}
}

func TestFinalize(t *testing.T) {
	s := NewSession(fixedTotal("100.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "40.00")

	if _, err := s.Finalize(); !errors.Is(err, apperror.ErrBalanceNotZero) {
		t.Fatalf("Finalize while unpaid: err = %v, want ErrBalanceNotZero", err)
	}

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "70.00")

	result, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !result.AmountCollected.Equal(dec("100.00")) {
		t.Errorf("AmountCollected = %s, want 100.00", result.AmountCollected)
	}
	if !result.TotalChange.Equal(dec("10.00")) {
		t.Errorf("TotalChange = %s, want 10.00", result.TotalChange)
	}
	if len(result.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(result.Entries))
	}

	// The finalized session is terminal.
	if err := s.RemoveTender(0); err == nil {
		t.Error("RemoveTender after finalize must fail")
	}
	if err := s.SelectTenderKind(enum.TenderKindCash); err == nil {
		t.Error("SelectTenderKind after finalize must fail")
	}
	if _, err := s.Finalize(); err == nil {
		t.Error("second Finalize must fail")
	}
}

func TestMultipleTendersSameKindAllowed(t *testing.T) {
	s := NewSession(fixedTotal("30.00"), catalog())

	for i := 0; i < 3; i++ {
		mustSelect(t, s, enum.TenderKindCash)
		mustSubmit(t, s, "10.00")
	}
	if len(s.Entries()) != 3 {
		t.Errorf("entries = %d, want 3", len(s.Entries()))
	}
	if s.State() != Settled {
		t.Errorf("state = %s, want Settled", s.State())
	}
}

// The session tracks the live sale total: editing the sale mid-payment moves
// the balance, and the session settles or reopens accordingly.
func TestLiveTotalTracking(t *testing.T) {
	total := dec("50.00")
	s := NewSession(func() decimal.Decimal { return total }, catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "50.00")
	if s.State() != Settled {
		t.Fatalf("state = %s, want Settled", s.State())
	}

	// An item is added mid-payment; the sale is no longer covered.
	total = dec("80.00")
	if s.State() != AwaitingTenderSelection {
		t.Errorf("state = %s, want AwaitingTenderSelection after total grew", s.State())
	}
	if !s.BalanceRemaining().Equal(dec("30.00")) {
		t.Errorf("balance = %s, want 30.00", s.BalanceRemaining())
	}
	if _, err := s.Finalize(); !errors.Is(err, apperror.ErrBalanceNotZero) {
		t.Errorf("Finalize: err = %v, want ErrBalanceNotZero", err)
	}

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "30.00")
	if _, err := s.Finalize(); err != nil {
		t.Errorf("Finalize after covering new total: %v", err)
	}
}

// A sale emptied mid-payment can bring the balance within tolerance while an
// instrument is still bound; finalize must wait until the entry is resolved.
func TestFinalizeRejectedMidEntry(t *testing.T) {
	total := dec("50.00")
	s := NewSession(func() decimal.Decimal { return total }, catalog())

	mustSelect(t, s, enum.TenderKindCash)
	total = dec("0.00")

	if _, err := s.Finalize(); err == nil {
		t.Fatal("Finalize with an amount entry pending must fail")
	}
	if s.Finalized() {
		t.Fatal("session marked finalized after rejected Finalize")
	}

	if err := s.CancelEntry(); err != nil {
		t.Fatalf("CancelEntry: %v", err)
	}
	if _, err := s.Finalize(); err != nil {
		t.Errorf("Finalize after cancelling the entry: %v", err)
	}
}

func TestFinalizeRejectedWhileChoosingInstrument(t *testing.T) {
	total := dec("50.00")
	s := NewSession(func() decimal.Decimal { return total }, catalog())

	mustSelect(t, s, enum.TenderKindTransfer)
	total = dec("0.00")

	if _, err := s.Finalize(); err == nil {
		t.Fatal("Finalize with an instrument choice pending must fail")
	}
	if len(s.Entries()) != 0 {
		t.Errorf("entries = %d, want 0", len(s.Entries()))
	}
}

func TestEpsilonSettlement(t *testing.T) {
	s := NewSession(fixedTotal("10.00"), catalog())

	mustSelect(t, s, enum.TenderKindCash)
	mustSubmit(t, s, "9.99")

	// One cent short is within the settlement tolerance.
	if s.State() != Settled {
		t.Errorf("state = %s, want Settled at 0.01 remaining", s.State())
	}
	if _, err := s.Finalize(); err != nil {
		t.Errorf("Finalize at 0.01 remaining: %v", err)
	}
}
