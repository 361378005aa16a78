package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/domain/money"
	"github.com/sellista/pos-checkout-api/internal/domain/payment"
	"github.com/sellista/pos-checkout-api/internal/domain/pricing"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// register is the server-side state of one checkout screen: the in-progress
// cart plus, once payment starts, its tender session. The payment session
// reads the cart's live totals, so editing lines mid-payment immediately
// moves the balance.
type register struct {
	mu         sync.Mutex
	id         uuid.UUID
	userID     uuid.UUID
	customer   *entity.Customer
	products   []entity.Product
	lines      []pricing.Line
	adj        pricing.GlobalAdjustments
	session    *payment.Session
	notes      *string
}

func (r *register) totals() pricing.Totals {
	return pricing.SaleTotals(r.lines, r.adj)
}

// CheckoutService owns the open registers. Registers are in-memory only; an
// abandoned cart dies with the process, which is exactly what an abandoned
// cart should do.
type CheckoutService struct {
	mu        sync.RWMutex
	registers map[uuid.UUID]*register

	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	instrumentRepo repository.InstrumentRepository
	saleService    *SaleService
	logger         *logrus.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	instrumentRepo repository.InstrumentRepository,
	saleService *SaleService,
	logger *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		registers:      make(map[uuid.UUID]*register),
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		instrumentRepo: instrumentRepo,
		saleService:    saleService,
		logger:         logger,
	}
}

// CheckoutLineView is the API projection of one cart line
type CheckoutLineView struct {
	ProductID        uuid.UUID       `json:"product_id"`
	Code             string          `json:"code"`
	Description      string          `json:"description"`
	Unit             string          `json:"unit"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `json:"surcharge_amount"`
	Total            decimal.Decimal `json:"total"`
}

// CheckoutPaymentView is the API projection of the payment session
type CheckoutPaymentView struct {
	State            string                `json:"state"`
	Candidates       []payment.Instrument  `json:"candidates,omitempty"`
	Entries          []payment.TenderEntry `json:"entries"`
	AmountCollected  decimal.Decimal       `json:"amount_collected"`
	TotalChange      decimal.Decimal       `json:"total_change"`
	BalanceRemaining decimal.Decimal       `json:"balance_remaining"`
}

// CheckoutView is the API projection of a register
type CheckoutView struct {
	ID       uuid.UUID            `json:"id"`
	Customer *entity.Customer     `json:"customer,omitempty"`
	Lines    []CheckoutLineView   `json:"lines"`
	Totals   pricing.Totals       `json:"totals"`
	Payment  *CheckoutPaymentView `json:"payment,omitempty"`
}

func (r *register) view() *CheckoutView {
	v := &CheckoutView{
		ID:       r.id,
		Customer: r.customer,
		Lines:    make([]CheckoutLineView, 0, len(r.lines)),
		Totals:   r.totals(),
	}
	for i, line := range r.lines {
		product := r.products[i]
		v.Lines = append(v.Lines, CheckoutLineView{
			ProductID:        product.ID,
			Code:             product.Code,
			Description:      product.Description,
			Unit:             product.Unit,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			DiscountPercent:  line.Discount.Percent,
			DiscountAmount:   money.Round2(line.Discount.Amount),
			SurchargePercent: line.Surcharge.Percent,
			SurchargeAmount:  money.Round2(line.Surcharge.Amount),
			Total:            money.Round2(line.Total()),
		})
	}
	if r.session != nil {
		v.Payment = &CheckoutPaymentView{
			State:            r.session.State().String(),
			Candidates:       r.session.Candidates(),
			Entries:          r.session.Entries(),
			AmountCollected:  money.Round2(r.session.AmountCollected()),
			TotalChange:      money.Round2(r.session.TotalChange()),
			BalanceRemaining: money.Round2(r.session.BalanceRemaining()),
		}
	}
	return v
}

// OpenRegister creates a new empty register for the user
func (s *CheckoutService) OpenRegister(ctx context.Context, userID uuid.UUID) *CheckoutView {
	reg := &register{
		id:     uuid.New(),
		userID: userID,
	}
	s.mu.Lock()
	s.registers[reg.id] = reg
	s.mu.Unlock()

	s.logger.WithField("register_id", reg.id).Info("register opened")
	return reg.view()
}

func (s *CheckoutService) get(id uuid.UUID) (*register, error) {
	s.mu.RLock()
	reg, ok := s.registers[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Register")
	}
	return reg, nil
}

// GetRegister returns the register state
func (s *CheckoutService) GetRegister(ctx context.Context, id uuid.UUID) (*CheckoutView, error) {
	reg, err := s.get(id)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.view(), nil
}

// CloseRegister discards a register and everything on it
func (s *CheckoutService) CloseRegister(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registers[id]; !ok {
		return apperror.NewNotFoundError("Register")
	}
	delete(s.registers, id)
	return nil
}

// AddItem resolves a product by code and adds it to the cart. Scanning a
// product already on the cart accumulates onto its line instead of opening a
// second one.
func (s *CheckoutService) AddItem(ctx context.Context, registerID uuid.UUID, code string, quantity float64) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}

	qty, err := money.FromFloat(quantity)
	if err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		qty = decimal.New(1, 0)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	for i := range reg.products {
		if reg.products[i].ID == product.ID {
			reg.lines[i].SetQuantity(reg.lines[i].Quantity.Add(qty))
			return reg.view(), nil
		}
	}

	reg.products = append(reg.products, *product)
	reg.lines = append(reg.lines, pricing.Line{
		UnitPrice: money.Clamp0(product.SellingPrice),
		Quantity:  qty,
	})
	return reg.view(), nil
}

// RemoveLine deletes a cart line by index
func (s *CheckoutService) RemoveLine(ctx context.Context, registerID uuid.UUID, index int) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if index < 0 || index >= len(reg.lines) {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	reg.lines = append(reg.lines[:index], reg.lines[index+1:]...)
	reg.products = append(reg.products[:index], reg.products[index+1:]...)
	return reg.view(), nil
}

// LineEdit names the cart line field being edited
type LineEdit string

const (
	EditQuantity         LineEdit = "quantity"
	EditUnitPrice        LineEdit = "unit_price"
	EditDiscountPercent  LineEdit = "discount_percent"
	EditDiscountAmount   LineEdit = "discount_amount"
	EditSurchargePercent LineEdit = "surcharge_percent"
	EditSurchargeAmount  LineEdit = "surcharge_amount"
)

// EditLine applies a single-field edit to a cart line. Percent and amount
// edits on the same adjustment re-derive each other from the line base;
// quantity and price edits re-derive the dependent side of both pairs.
func (s *CheckoutService) EditLine(ctx context.Context, registerID uuid.UUID, index int, field LineEdit, value float64) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}

	v, err := money.FromFloat(value)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if index < 0 || index >= len(reg.lines) {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	line := &reg.lines[index]

	switch field {
	case EditQuantity:
		line.SetQuantity(v)
	case EditUnitPrice:
		line.SetUnitPrice(v)
	case EditDiscountPercent:
		line.SetDiscountPercent(v)
	case EditDiscountAmount:
		line.SetDiscountAmount(v)
	case EditSurchargePercent:
		line.SetSurchargePercent(v)
	case EditSurchargeAmount:
		line.SetSurchargeAmount(v)
	default:
		return nil, apperror.NewBadRequestError("Unknown line field " + string(field))
	}

	return reg.view(), nil
}

// GlobalAdjustmentsInput carries the sale-wide adjustment fields; nil fields
// are left unchanged.
type GlobalAdjustmentsInput struct {
	DiscountPercent  *float64
	DiscountAmount   *float64
	SurchargePercent *float64
	SurchargeAmount  *float64
	ShippingFee      *float64
}

// SetGlobalAdjustments updates the sale-wide discount, surcharge and
// shipping fields.
func (s *CheckoutService) SetGlobalAdjustments(ctx context.Context, registerID uuid.UUID, input *GlobalAdjustmentsInput) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	set := func(dst *decimal.Decimal, src *float64) error {
		if src == nil {
			return nil
		}
		v, err := money.FromFloat(*src)
		if err != nil {
			return err
		}
		*dst = money.Clamp0(v)
		return nil
	}

	if err := set(&reg.adj.DiscountPercent, input.DiscountPercent); err != nil {
		return nil, err
	}
	if err := set(&reg.adj.DiscountAmount, input.DiscountAmount); err != nil {
		return nil, err
	}
	if err := set(&reg.adj.SurchargePercent, input.SurchargePercent); err != nil {
		return nil, err
	}
	if err := set(&reg.adj.SurchargeAmount, input.SurchargeAmount); err != nil {
		return nil, err
	}
	if err := set(&reg.adj.ShippingFee, input.ShippingFee); err != nil {
		return nil, err
	}

	return reg.view(), nil
}

// SetCustomer binds a customer to the register; a nil ID clears it
func (s *CheckoutService) SetCustomer(ctx context.Context, registerID uuid.UUID, customerID *uuid.UUID) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}

	var customer *entity.Customer
	if customerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, apperror.NewUpstreamError(err)
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.customer = customer
	return reg.view(), nil
}

// SetNotes attaches free-form notes to the in-progress sale
func (s *CheckoutService) SetNotes(ctx context.Context, registerID uuid.UUID, notes *string) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.notes = notes
	return reg.view(), nil
}

// StartPayment opens a tender session over the active instrument catalog.
// The session tracks the cart's live total, so line edits after this point
// still move the balance.
func (s *CheckoutService) StartPayment(ctx context.Context, registerID uuid.UUID) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}

	instruments, err := s.instrumentRepo.List(ctx, true)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}
	catalog := make([]payment.Instrument, 0, len(instruments))
	for _, in := range instruments {
		catalog = append(catalog, payment.Instrument{
			ID:          in.ID,
			Description: in.Description,
			Kind:        in.Kind,
		})
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if len(reg.lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if reg.session != nil {
		return nil, apperror.NewConflictError("Payment has already started")
	}

	reg.session = payment.NewSession(func() decimal.Decimal {
		return reg.totals().GrandTotal
	}, catalog)

	return reg.view(), nil
}

// CancelPayment drops the tender session, keeping the cart
func (s *CheckoutService) CancelPayment(ctx context.Context, registerID uuid.UUID) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.session == nil {
		return nil, apperror.NewConflictError("No payment in progress")
	}
	reg.session = nil
	return reg.view(), nil
}

func (s *CheckoutService) withSession(registerID uuid.UUID, fn func(*payment.Session) error) (*CheckoutView, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.session == nil {
		return nil, apperror.NewConflictError("No payment in progress")
	}
	if err := fn(reg.session); err != nil {
		return nil, err
	}
	return reg.view(), nil
}

// SelectTenderKind starts a tender entry for the given kind
func (s *CheckoutService) SelectTenderKind(ctx context.Context, registerID uuid.UUID, kind enum.TenderKind) (*CheckoutView, error) {
	return s.withSession(registerID, func(sess *payment.Session) error {
		return sess.SelectTenderKind(kind)
	})
}

// ChooseInstrument resolves an ambiguous kind selection
func (s *CheckoutService) ChooseInstrument(ctx context.Context, registerID uuid.UUID, instrumentID uuid.UUID) (*CheckoutView, error) {
	return s.withSession(registerID, func(sess *payment.Session) error {
		return sess.ChooseInstrument(instrumentID)
	})
}

// SubmitAmount applies a tender amount through the bound instrument
func (s *CheckoutService) SubmitAmount(ctx context.Context, registerID uuid.UUID, amount float64) (*CheckoutView, error) {
	v, err := money.FromFloat(amount)
	if err != nil {
		return nil, err
	}
	return s.withSession(registerID, func(sess *payment.Session) error {
		return sess.SubmitAmount(v)
	})
}

// CancelEntry abandons the tender entry in progress
func (s *CheckoutService) CancelEntry(ctx context.Context, registerID uuid.UUID) (*CheckoutView, error) {
	return s.withSession(registerID, func(sess *payment.Session) error {
		return sess.CancelEntry()
	})
}

// RemoveTender removes an applied tender entry by index
func (s *CheckoutService) RemoveTender(ctx context.Context, registerID uuid.UUID, index int) (*CheckoutView, error) {
	return s.withSession(registerID, func(sess *payment.Session) error {
		return sess.RemoveTender(index)
	})
}

// Finalize persists the settled sale. The tender session is only sealed once
// the sale is safely stored; a storage failure surfaces as an upstream error
// and leaves the session (entries included) intact for retry.
func (s *CheckoutService) Finalize(ctx context.Context, registerID uuid.UUID) (*entity.Sale, error) {
	reg, err := s.get(registerID)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.session == nil {
		return nil, apperror.NewConflictError("No payment in progress")
	}
	if reg.session.State() != payment.Settled {
		return nil, apperror.ErrBalanceNotZero
	}

	result := &payment.Result{
		Entries:         reg.session.Entries(),
		AmountCollected: reg.session.AmountCollected(),
		TotalChange:     reg.session.TotalChange(),
	}

	comp := &saleComputation{
		products: reg.products,
		lines:    reg.lines,
		adj:      reg.adj,
		totals:   reg.totals(),
		result:   result,
	}

	var customerID *uuid.UUID
	if reg.customer != nil {
		customerID = &reg.customer.ID
	}

	sale, err := s.saleService.persist(ctx, reg.userID, customerID, reg.notes, comp)
	if err != nil {
		return nil, err
	}

	// Seal the session and reset the register for the next sale.
	if _, err := reg.session.Finalize(); err != nil {
		s.logger.WithError(err).WithField("register_id", reg.id).Warn("session finalize after persist")
	}
	reg.products = nil
	reg.lines = nil
	reg.adj = pricing.GlobalAdjustments{}
	reg.customer = nil
	reg.notes = nil
	reg.session = nil

	s.logger.WithFields(logrus.Fields{
		"register_id": reg.id,
		"sale_id":     sale.ID,
		"document_no": sale.DocumentNo,
	}).Info("checkout finalized")

	return sale, nil
}
