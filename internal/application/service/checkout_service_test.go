package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// --- in-memory fakes ---

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
		for _, alt := range p.AltCodes {
			if alt.Code == code {
				return p, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *fakeProductRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) AdjustStockBatch(ctx context.Context, deltas map[uuid.UUID]decimal.Decimal) error {
	for id, delta := range deltas {
		if p, ok := r.products[id]; ok {
			p.Stock = p.Stock.Add(delta)
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByCode(ctx context.Context, code string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}
func (r *fakeCustomerRepo) Search(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	return nil, nil
}

type fakeInstrumentRepo struct {
	instruments []entity.TenderInstrument
}

func (r *fakeInstrumentRepo) Create(ctx context.Context, in *entity.TenderInstrument) error {
	return nil
}
func (r *fakeInstrumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TenderInstrument, error) {
	for i := range r.instruments {
		if r.instruments[i].ID == id {
			return &r.instruments[i], nil
		}
	}
	return nil, nil
}
func (r *fakeInstrumentRepo) Update(ctx context.Context, in *entity.TenderInstrument) error {
	return nil
}
func (r *fakeInstrumentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeInstrumentRepo) List(ctx context.Context, activeOnly bool) ([]entity.TenderInstrument, error) {
	return r.instruments, nil
}
func (r *fakeInstrumentRepo) ListByKind(ctx context.Context, kind enum.TenderKind, activeOnly bool) ([]entity.TenderInstrument, error) {
	return nil, nil
}
func (r *fakeInstrumentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.instruments)), nil
}

type fakeSaleRepo struct {
	sales      map[uuid.UUID]*entity.Sale
	nextDocNo  int64
	failCreate bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if r.failCreate {
		return errors.New("insert rejected")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetByDocumentNo(ctx context.Context, documentNo int64) (*entity.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, s *entity.Sale) error { return nil }

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (r *fakeSaleRepo) NextDocumentNo(ctx context.Context) (int64, error) {
	r.nextDocNo++
	return r.nextDocNo, nil
}

func (r *fakeSaleRepo) TotalsBySession(ctx context.Context, sessionID uuid.UUID) (repository.SessionSaleTotals, error) {
	return repository.SessionSaleTotals{}, nil
}

type fakeSettingsRepo struct {
	settings *entity.CompanySettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	return r.settings, nil
}
func (r *fakeSettingsRepo) Create(ctx context.Context, s *entity.CompanySettings) error {
	r.settings = s
	return nil
}
func (r *fakeSettingsRepo) Update(ctx context.Context, s *entity.CompanySettings) error {
	r.settings = s
	return nil
}

type fakeSessionRepo struct {
	open      *entity.CashSession
	movements []entity.CashMovement
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.open = s
	return nil
}
func (r *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return r.open, nil
}
func (r *fakeSessionRepo) GetOpen(ctx context.Context) (*entity.CashSession, error) {
	if r.open != nil && r.open.Status == enum.CashSessionOpen {
		return r.open, nil
	}
	return nil, nil
}
func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.CashSession) error { return nil }
func (r *fakeSessionRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	return nil, 0, nil
}
func (r *fakeSessionRepo) GetWithMovements(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return r.open, nil
}
func (r *fakeSessionRepo) AddMovement(ctx context.Context, m *entity.CashMovement) error {
	r.movements = append(r.movements, *m)
	switch m.Type {
	case enum.MovementSale, enum.MovementReversal:
		r.open.SalesTotal = r.open.SalesTotal.Add(m.Amount)
	case enum.MovementSupply:
		r.open.SupplyTotal = r.open.SupplyTotal.Add(m.Amount)
	case enum.MovementWithdrawal:
		r.open.WithdrawalTotal = r.open.WithdrawalTotal.Add(m.Amount)
	}
	return nil
}
func (r *fakeSessionRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]entity.CashMovement, error) {
	return r.movements, nil
}

// --- fixtures ---

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type checkoutFixture struct {
	checkout    *CheckoutService
	products    *fakeProductRepo
	sales       *fakeSaleRepo
	sessions    *fakeSessionRepo
	settings    *fakeSettingsRepo
	instruments *fakeInstrumentRepo
	userID      uuid.UUID
}

func newCheckoutFixture(t *testing.T, controlTill bool) *checkoutFixture {
	t.Helper()

	products := newFakeProductRepo(
		&entity.Product{
			Code:         "7891000100103",
			Description:  "Leite Integral 1L",
			Unit:         "UN",
			SellingPrice: decimal.NewFromFloat(5.50),
			Stock:        decimal.NewFromInt(100),
			TrackStock:   true,
			Active:       true,
		},
		&entity.Product{
			Code:         "2001",
			Description:  "Queijo Minas kg",
			Unit:         "KG",
			SellingPrice: decimal.NewFromFloat(40.00),
			Stock:        decimal.NewFromInt(10),
			TrackStock:   true,
			Active:       true,
		},
	)

	instruments := &fakeInstrumentRepo{instruments: []entity.TenderInstrument{
		{ID: uuid.New(), Description: "Dinheiro", Kind: enum.TenderKindCash, Active: true},
		{ID: uuid.New(), Description: "Cartão de Crédito", Kind: enum.TenderKindCreditCard, Active: true},
		{ID: uuid.New(), Description: "PIX Loja", Kind: enum.TenderKindTransfer, Active: true},
		{ID: uuid.New(), Description: "PIX Matriz", Kind: enum.TenderKindTransfer, Active: true},
	}}

	sales := newFakeSaleRepo()
	settings := &fakeSettingsRepo{settings: &entity.CompanySettings{
		TradeName:   "Mercearia Central",
		ControlTill: controlTill,
	}}

	sessions := &fakeSessionRepo{}
	if controlTill {
		sessions.open = &entity.CashSession{
			ID:       uuid.New(),
			Status:   enum.CashSessionOpen,
			OpenedAt: time.Now(),
		}
	}

	logger := quietLogger()
	customers := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	sessionService := NewCashSessionService(sessions, logger)
	saleService := NewSaleService(sales, products, customers, instruments, settings, sessionService, logger)
	checkout := NewCheckoutService(products, customers, instruments, saleService, logger)

	return &checkoutFixture{
		checkout:    checkout,
		products:    products,
		sales:       sales,
		sessions:    sessions,
		settings:    settings,
		instruments: instruments,
		userID:      uuid.New(),
	}
}

func (f *checkoutFixture) instrumentByKind(kind enum.TenderKind) entity.TenderInstrument {
	for _, in := range f.instruments.instruments {
		if in.Kind == kind {
			return in
		}
	}
	return entity.TenderInstrument{}
}

// --- tests ---

func TestCheckoutCashSaleWithChange(t *testing.T) {
	f := newCheckoutFixture(t, true)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)

	view, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := view.Totals.GrandTotal.StringFixed(2); got != "11.00" {
		t.Fatalf("grand total = %s, want 11.00", got)
	}

	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCash); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	view, err = f.checkout.SubmitAmount(ctx, view.ID, 20.00)
	if err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}
	if view.Payment.State != "Settled" {
		t.Fatalf("state = %s, want Settled", view.Payment.State)
	}
	if got := view.Payment.TotalChange.StringFixed(2); got != "9.00" {
		t.Fatalf("change = %s, want 9.00", got)
	}

	sale, err := f.checkout.Finalize(ctx, view.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sale.DocumentNo != 1 {
		t.Errorf("document no = %d, want 1", sale.DocumentNo)
	}
	if got := sale.Total.StringFixed(2); got != "11.00" {
		t.Errorf("sale total = %s, want 11.00", got)
	}
	if got := sale.ChangeGiven.StringFixed(2); got != "9.00" {
		t.Errorf("sale change = %s, want 9.00", got)
	}

	// Stock decremented and the drawer movement recorded for the net cash.
	for _, p := range f.products.products {
		if p.Code == "7891000100103" {
			if got := p.Stock.StringFixed(0); got != "98" {
				t.Errorf("stock = %s, want 98", got)
			}
		}
	}
	if len(f.sessions.movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(f.sessions.movements))
	}
	if got := f.sessions.movements[0].Amount.StringFixed(2); got != "11.00" {
		t.Errorf("movement amount = %s, want 11.00", got)
	}

	// The register resets for the next sale.
	view, err = f.checkout.GetRegister(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if len(view.Lines) != 0 || view.Payment != nil {
		t.Errorf("register not reset after finalize")
	}
}

func TestCheckoutCardOverBalanceRejected(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	view, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCreditCard); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	if _, err := f.checkout.SubmitAmount(ctx, view.ID, 50.00); !errors.Is(err, apperror.ErrExceedsBalance) {
		t.Fatalf("SubmitAmount over balance = %v, want ErrExceedsBalance", err)
	}

	// The rejected entry leaves the session where it was.
	view, err = f.checkout.GetRegister(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if len(view.Payment.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(view.Payment.Entries))
	}
}

func TestCheckoutAmbiguousKindNeedsChoice(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "2001", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}

	view, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindTransfer)
	if err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	if view.Payment.State != "TenderKindChosen" {
		t.Fatalf("state = %s, want TenderKindChosen", view.Payment.State)
	}
	if len(view.Payment.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(view.Payment.Candidates))
	}

	view, err = f.checkout.ChooseInstrument(ctx, view.ID, view.Payment.Candidates[1].ID)
	if err != nil {
		t.Fatalf("ChooseInstrument: %v", err)
	}
	if view.Payment.State != "AwaitingAmountEntry" {
		t.Fatalf("state = %s, want AwaitingAmountEntry", view.Payment.State)
	}
}

func TestCheckoutLineEditMidPaymentMovesBalance(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 4); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// 22.00 total; pay 11.00 in cash, then halve the quantity.
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCash); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	if _, err := f.checkout.SubmitAmount(ctx, view.ID, 11.00); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}

	view, err := f.checkout.EditLine(ctx, view.ID, 0, EditQuantity, 2)
	if err != nil {
		t.Fatalf("EditLine: %v", err)
	}
	if view.Payment.State != "Settled" {
		t.Errorf("state = %s, want Settled after total dropped to paid amount", view.Payment.State)
	}
	if got := view.Payment.BalanceRemaining.StringFixed(2); got != "0.00" {
		t.Errorf("balance = %s, want 0.00", got)
	}
}

func TestCheckoutFinalizeRequiresOpenTill(t *testing.T) {
	f := newCheckoutFixture(t, true)
	f.sessions.open = nil // till closed, control enabled
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCash); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	if _, err := f.checkout.SubmitAmount(ctx, view.ID, 5.50); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}

	if _, err := f.checkout.Finalize(ctx, view.ID); !errors.Is(err, apperror.ErrTillClosed) {
		t.Fatalf("Finalize = %v, want ErrTillClosed", err)
	}

	// The session survives the failure: opening the till lets the same
	// register finalize without re-entering tenders.
	f.sessions.open = &entity.CashSession{ID: uuid.New(), Status: enum.CashSessionOpen, OpenedAt: time.Now()}
	sale, err := f.checkout.Finalize(ctx, view.ID)
	if err != nil {
		t.Fatalf("Finalize retry: %v", err)
	}
	if got := sale.Total.StringFixed(2); got != "5.50" {
		t.Errorf("sale total = %s, want 5.50", got)
	}
}

func TestCheckoutStorageFailureKeepsSession(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCash); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}
	if _, err := f.checkout.SubmitAmount(ctx, view.ID, 5.50); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}

	f.sales.failCreate = true
	_, err := f.checkout.Finalize(ctx, view.ID)
	if err == nil {
		t.Fatal("Finalize succeeded despite storage failure")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 502 {
		t.Errorf("error code = %d, want 502", appErr.Code)
	}

	view, err = f.checkout.GetRegister(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if view.Payment == nil || len(view.Payment.Entries) != 1 {
		t.Fatal("payment session lost after storage failure")
	}

	f.sales.failCreate = false
	if _, err := f.checkout.Finalize(ctx, view.ID); err != nil {
		t.Fatalf("Finalize retry: %v", err)
	}
}

func TestCheckoutScanAccumulatesLine(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	view, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(view.Lines))
	}
	if got := view.Lines[0].Quantity.StringFixed(0); got != "2" {
		t.Errorf("quantity = %s, want 2", got)
	}
}

func TestDirectSaleReplaysTenders(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	logger := quietLogger()
	customers := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	sessionService := NewCashSessionService(f.sessions, logger)
	saleService := NewSaleService(f.sales, f.products, customers, f.instruments, f.settings, sessionService, logger)

	var productID uuid.UUID
	for id, p := range f.products.products {
		if p.Code == "7891000100103" {
			productID = id
		}
	}

	cash := f.instrumentByKind(enum.TenderKindCash)
	card := f.instrumentByKind(enum.TenderKindCreditCard)

	sale, err := saleService.CreateSale(ctx, &CreateSaleInput{
		UserID: f.userID,
		Lines: []SaleLineInput{
			{ProductID: productID, Quantity: 10}, // 55.00
		},
		DiscountAmount: 5.00, // 50.00
		Tenders: []SaleTenderInput{
			{InstrumentID: card.ID, Amount: 30.00},
			{InstrumentID: cash.ID, Amount: 25.00}, // 5.00 change
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if got := sale.Total.StringFixed(2); got != "50.00" {
		t.Errorf("total = %s, want 50.00", got)
	}
	if got := sale.AmountPaid.StringFixed(2); got != "50.00" {
		t.Errorf("paid = %s, want 50.00", got)
	}
	if got := sale.ChangeGiven.StringFixed(2); got != "5.00" {
		t.Errorf("change = %s, want 5.00", got)
	}
	if len(sale.Payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(sale.Payments))
	}
}

func TestDirectSaleCardCannotOverpay(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	logger := quietLogger()
	customers := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	sessionService := NewCashSessionService(f.sessions, logger)
	saleService := NewSaleService(f.sales, f.products, customers, f.instruments, f.settings, sessionService, logger)

	var productID uuid.UUID
	for id, p := range f.products.products {
		if p.Code == "7891000100103" {
			productID = id
		}
	}
	card := f.instrumentByKind(enum.TenderKindCreditCard)

	_, err := saleService.CreateSale(ctx, &CreateSaleInput{
		UserID: f.userID,
		Lines:  []SaleLineInput{{ProductID: productID, Quantity: 1}},
		Tenders: []SaleTenderInput{
			{InstrumentID: card.ID, Amount: 100.00},
		},
	})
	if !errors.Is(err, apperror.ErrExceedsBalance) {
		t.Fatalf("CreateSale = %v, want ErrExceedsBalance", err)
	}
}

func TestCashSessionCloseComputesDeviation(t *testing.T) {
	sessions := &fakeSessionRepo{}
	svc := NewCashSessionService(sessions, quietLogger())
	ctx := context.Background()

	if _, err := svc.OpenSession(ctx, &OpenSessionInput{UserID: uuid.New(), OpeningAmount: 100}); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if _, err := svc.OpenSession(ctx, &OpenSessionInput{UserID: uuid.New(), OpeningAmount: 50}); err == nil {
		t.Fatal("second OpenSession succeeded, want conflict")
	}

	if _, err := svc.RegisterSupply(ctx, &MovementInput{Amount: 20, Description: "Troco extra"}); err != nil {
		t.Fatalf("RegisterSupply: %v", err)
	}
	if _, err := svc.RegisterWithdrawal(ctx, &MovementInput{Amount: 30, Description: "Sangria"}); err != nil {
		t.Fatalf("RegisterWithdrawal: %v", err)
	}

	// expected = 100 + 0 + 20 - 30 = 90; declared 85 -> deviation -5
	session, err := svc.CloseSession(ctx, &CloseSessionInput{DeclaredAmount: 85})
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if got := session.ExpectedAmount.StringFixed(2); got != "90.00" {
		t.Errorf("expected = %s, want 90.00", got)
	}
	if got := session.Deviation.StringFixed(2); got != "-5.00" {
		t.Errorf("deviation = %s, want -5.00", got)
	}
}

func TestCheckoutZeroTenderAmountRejected(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	view := f.checkout.OpenRegister(ctx, f.userID)
	if _, err := f.checkout.AddItem(ctx, view.ID, "7891000100103", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.checkout.StartPayment(ctx, view.ID); err != nil {
		t.Fatalf("StartPayment: %v", err)
	}
	if _, err := f.checkout.SelectTenderKind(ctx, view.ID, enum.TenderKindCash); err != nil {
		t.Fatalf("SelectTenderKind: %v", err)
	}

	for _, amount := range []float64{0, -10} {
		if _, err := f.checkout.SubmitAmount(ctx, view.ID, amount); !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Errorf("SubmitAmount(%v): err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestCheckoutRegistersAreIsolated(t *testing.T) {
	f := newCheckoutFixture(t, false)
	ctx := context.Background()

	regA := f.checkout.OpenRegister(ctx, f.userID)
	regB := f.checkout.OpenRegister(ctx, uuid.New())

	if _, err := f.checkout.AddItem(ctx, regA.ID, "7891000100103", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	viewB, err := f.checkout.GetRegister(ctx, regB.ID)
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if len(viewB.Lines) != 0 {
		t.Errorf("second register has %d lines, want 0", len(viewB.Lines))
	}

	if err := f.checkout.CloseRegister(ctx, regB.ID); err != nil {
		t.Fatalf("CloseRegister: %v", err)
	}
	if _, err := f.checkout.GetRegister(ctx, regB.ID); err == nil {
		t.Error("GetRegister after close succeeded, want not found")
	}

	// The first register is untouched by the close.
	viewA, err := f.checkout.GetRegister(ctx, regA.ID)
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if len(viewA.Lines) != 1 {
		t.Errorf("first register has %d lines, want 1", len(viewA.Lines))
	}
}
