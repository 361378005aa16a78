package service

import (
	"context"
	"fmt"
	"time"

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

// SaleService handles sale creation, lookup and cancellation. Totals and
// tender validation are never trusted from the client: every sale is
// recomputed through the pricing engine and its tenders replayed through the
// payment engine before anything is persisted.
type SaleService struct {
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	instrumentRepo repository.InstrumentRepository
	settingsRepo   repository.SettingsRepository
	sessionService *CashSessionService
	logger         *logrus.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	instrumentRepo repository.InstrumentRepository,
	settingsRepo repository.SettingsRepository,
	sessionService *CashSessionService,
	logger *logrus.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		instrumentRepo: instrumentRepo,
		settingsRepo:   settingsRepo,
		sessionService: sessionService,
		logger:         logger,
	}
}

// SaleLineInput is one line of a direct sale submission. The discount and
// surcharge fields are taken as-entered; both halves of each pair apply.
type SaleLineInput struct {
	ProductID        uuid.UUID
	Quantity         float64
	UnitPrice        *float64 // overrides the catalog price when set
	DiscountPercent  float64
	DiscountAmount   float64
	SurchargePercent float64
	SurchargeAmount  float64
}

// SaleTenderInput is one tender of a direct sale submission
type SaleTenderInput struct {
	InstrumentID uuid.UUID
	Amount       float64
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID           uuid.UUID
	CustomerID       *uuid.UUID
	Notes            *string
	Lines            []SaleLineInput
	DiscountPercent  float64
	DiscountAmount   float64
	SurchargePercent float64
	SurchargeAmount  float64
	ShippingFee      float64
	Tenders          []SaleTenderInput
}

// saleComputation is the fully recomputed sale ready to persist
type saleComputation struct {
	products []entity.Product
	lines    []pricing.Line
	adj      pricing.GlobalAdjustments
	totals   pricing.Totals
	result   *payment.Result
}

// CreateSale recomputes the submitted sale, replays its tenders through the
// payment workflow and persists the result.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one line")
	}

	comp, err := s.compute(ctx, input)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, input.UserID, input.CustomerID, input.Notes, comp)
}

func (s *SaleService) compute(ctx context.Context, input *CreateSaleInput) (*saleComputation, error) {
	ids := make([]uuid.UUID, 0, len(input.Lines))
	for _, l := range input.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	comp := &saleComputation{}
	for _, in := range input.Lines {
		product, ok := byID[in.ProductID]
		if !ok || !product.Active {
			return nil, apperror.NewNotFoundError("Product " + in.ProductID.String())
		}

		qty, err := money.FromFloat(in.Quantity)
		if err != nil {
			return nil, err
		}
		if !qty.IsPositive() {
			return nil, apperror.NewBadRequestError("Line quantity must be greater than zero")
		}

		unitPrice := product.SellingPrice
		if in.UnitPrice != nil {
			unitPrice, err = money.FromFloat(*in.UnitPrice)
			if err != nil {
				return nil, err
			}
		}

		line := pricing.Line{UnitPrice: money.Clamp0(unitPrice), Quantity: qty}
		if err := applyLineAdjustments(&line, in); err != nil {
			return nil, err
		}

		comp.products = append(comp.products, product)
		comp.lines = append(comp.lines, line)
	}

	comp.adj, err = globalAdjustments(input)
	if err != nil {
		return nil, err
	}
	comp.totals = pricing.SaleTotals(comp.lines, comp.adj)

	comp.result, err = s.replayTenders(ctx, comp.totals.GrandTotal, input.Tenders)
	if err != nil {
		return nil, err
	}

	return comp, nil
}

func applyLineAdjustments(line *pricing.Line, in SaleLineInput) error {
	dp, err := money.FromFloat(in.DiscountPercent)
	if err != nil {
		return err
	}
	da, err := money.FromFloat(in.DiscountAmount)
	if err != nil {
		return err
	}
	sp, err := money.FromFloat(in.SurchargePercent)
	if err != nil {
		return err
	}
	sa, err := money.FromFloat(in.SurchargeAmount)
	if err != nil {
		return err
	}
	line.Discount = pricing.Adjustment{Percent: money.Clamp0(dp), Amount: money.Clamp0(da)}
	line.Surcharge = pricing.Adjustment{Percent: money.Clamp0(sp), Amount: money.Clamp0(sa)}
	return nil
}

func globalAdjustments(input *CreateSaleInput) (pricing.GlobalAdjustments, error) {
	var adj pricing.GlobalAdjustments
	var err error
	if adj.DiscountPercent, err = money.FromFloat(input.DiscountPercent); err != nil {
		return adj, err
	}
	if adj.DiscountAmount, err = money.FromFloat(input.DiscountAmount); err != nil {
		return adj, err
	}
	if adj.SurchargePercent, err = money.FromFloat(input.SurchargePercent); err != nil {
		return adj, err
	}
	if adj.SurchargeAmount, err = money.FromFloat(input.SurchargeAmount); err != nil {
		return adj, err
	}
	if adj.ShippingFee, err = money.FromFloat(input.ShippingFee); err != nil {
		return adj, err
	}
	return adj, nil
}

// replayTenders feeds the submitted tenders through a fresh payment session
// so every workflow rule (cash change, card over-balance rejection, the
// settlement tolerance) applies to direct API sales exactly as it does at the
// register.
func (s *SaleService) replayTenders(ctx context.Context, total decimal.Decimal, tenders []SaleTenderInput) (*payment.Result, error) {
	if len(tenders) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one tender")
	}

	instruments, err := s.instrumentRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	catalog := make([]payment.Instrument, 0, len(instruments))
	byID := make(map[uuid.UUID]payment.Instrument, len(instruments))
	for _, in := range instruments {
		pi := payment.Instrument{ID: in.ID, Description: in.Description, Kind: in.Kind}
		catalog = append(catalog, pi)
		byID[in.ID] = pi
	}

	session := payment.NewSession(func() decimal.Decimal { return total }, catalog)

	for _, t := range tenders {
		instrument, ok := byID[t.InstrumentID]
		if !ok {
			return nil, apperror.NewNotFoundError("Tender instrument " + t.InstrumentID.String())
		}

		amount, err := money.FromFloat(t.Amount)
		if err != nil {
			return nil, err
		}

		if err := session.SelectTenderKind(instrument.Kind); err != nil {
			return nil, err
		}
		if session.State() == payment.TenderKindChosen {
			if err := session.ChooseInstrument(instrument.ID); err != nil {
				return nil, err
			}
		}
		if err := session.SubmitAmount(amount); err != nil {
			return nil, err
		}
	}

	return session.Finalize()
}

// persist writes the sale, decrements stock and records the drawer movement.
func (s *SaleService) persist(ctx context.Context, userID uuid.UUID, customerID *uuid.UUID, notes *string, comp *saleComputation) (*entity.Sale, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	var sessionID *uuid.UUID
	if settings != nil && settings.ControlTill {
		session, err := s.sessionService.sessionRepo.GetOpen(ctx)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, apperror.ErrTillClosed
		}
		sessionID = &session.ID
	}

	if customerID == nil && settings != nil && settings.DefaultCustomerID != nil {
		customerID = settings.DefaultCustomerID
	}

	documentNo, err := s.saleRepo.NextDocumentNo(ctx)
	if err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	sale := &entity.Sale{
		DocumentNo:       documentNo,
		UserID:           userID,
		CustomerID:       customerID,
		CashSessionID:    sessionID,
		SaleDate:         time.Now(),
		Subtotal:         money.Round2(comp.totals.Subtotal),
		DiscountPercent:  comp.adj.DiscountPercent,
		DiscountAmount:   money.Round2(comp.adj.DiscountAmount),
		SurchargePercent: comp.adj.SurchargePercent,
		SurchargeAmount:  money.Round2(comp.adj.SurchargeAmount),
		ShippingFee:      money.Round2(comp.adj.ShippingFee),
		Total:            money.Round2(comp.totals.GrandTotal),
		AmountPaid:       money.Round2(comp.result.AmountCollected),
		ChangeGiven:      money.Round2(comp.result.TotalChange),
		Notes:            notes,
	}

	for i, line := range comp.lines {
		sale.Lines = append(sale.Lines, entity.SaleLine{
			ProductID:        comp.products[i].ID,
			Sequence:         i + 1,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			DiscountPercent:  line.Discount.Percent,
			DiscountAmount:   money.Round2(line.Discount.Amount),
			SurchargePercent: line.Surcharge.Percent,
			SurchargeAmount:  money.Round2(line.Surcharge.Amount),
			Total:            money.Round2(line.Total()),
		})
	}

	for _, entry := range comp.result.Entries {
		sale.Payments = append(sale.Payments, entity.SalePayment{
			InstrumentID:  entry.Instrument.ID,
			AmountEntered: money.Round2(entry.AmountEntered),
			AmountApplied: money.Round2(entry.AmountApplied),
			ChangeGiven:   money.Round2(entry.ChangeGiven),
		})
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	if err := s.adjustStock(ctx, comp, false); err != nil {
		s.logger.WithError(err).WithField("sale_id", sale.ID).Error("failed to decrement stock")
	}

	if sessionID != nil {
		cash := cashPortion(comp.result.Entries)
		if cash.IsPositive() {
			desc := fmt.Sprintf("Venda #%d", sale.DocumentNo)
			if err := s.sessionService.RecordSaleMovement(ctx, *sessionID, enum.MovementSale, cash, desc, sale.ID); err != nil {
				s.logger.WithError(err).WithField("sale_id", sale.ID).Error("failed to record drawer movement")
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"sale_id":     sale.ID,
		"document_no": sale.DocumentNo,
		"total":       sale.Total,
		"tenders":     len(sale.Payments),
	}).Info("sale created")

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// adjustStock applies line quantities against tracked products. restore
// inverts the deltas for cancellations.
func (s *SaleService) adjustStock(ctx context.Context, comp *saleComputation, restore bool) error {
	deltas := make(map[uuid.UUID]decimal.Decimal)
	for i, line := range comp.lines {
		product := comp.products[i]
		if !product.TrackStock {
			continue
		}
		delta := line.Quantity.Neg()
		if restore {
			delta = line.Quantity
		}
		deltas[product.ID] = deltas[product.ID].Add(delta)
	}
	return s.productRepo.AdjustStockBatch(ctx, deltas)
}

// cashPortion sums the net cash taken across tender entries: the applied
// amount of cash-equivalent instruments, change already excluded.
func cashPortion(entries []payment.TenderEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.Instrument.Kind.CashEquivalent() {
			sum = sum.Add(e.AmountApplied)
		}
	}
	return sum
}

// GetSale returns a sale with lines, payments, customer and user
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns sales matching the filter
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}

// CancelSale marks a sale cancelled, restores tracked stock and writes an
// inverse drawer movement for the cash portion.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Cancelled {
		return nil, apperror.NewConflictError("Sale is already cancelled")
	}

	sale.Cancelled = true
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, apperror.NewUpstreamError(err)
	}

	deltas := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range sale.Lines {
		if !line.Product.TrackStock {
			continue
		}
		deltas[line.ProductID] = deltas[line.ProductID].Add(line.Quantity)
	}
	if err := s.productRepo.AdjustStockBatch(ctx, deltas); err != nil {
		s.logger.WithError(err).WithField("sale_id", sale.ID).Error("failed to restore stock")
	}

	if sale.CashSessionID != nil {
		cash := decimal.Zero
		for _, p := range sale.Payments {
			if p.Instrument.Kind.CashEquivalent() {
				cash = cash.Add(p.AmountApplied)
			}
		}
		if cash.IsPositive() {
			desc := fmt.Sprintf("Cancelamento venda #%d", sale.DocumentNo)
			if err := s.sessionService.RecordSaleMovement(ctx, *sale.CashSessionID, enum.MovementReversal, cash.Neg(), desc, sale.ID); err != nil {
				s.logger.WithError(err).WithField("sale_id", sale.ID).Error("failed to record reversal movement")
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"sale_id":     sale.ID,
		"document_no": sale.DocumentNo,
	}).Info("sale cancelled")

	return sale, nil
}
