package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/money"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/sellista/pos-checkout-api/pkg/printer"
	"github.com/sirupsen/logrus"
)

// PrinterService handles coupon formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	sessionRepo  repository.CashSessionRepository
	settingsRepo repository.SettingsRepository
	printerType  string
	width        int
	logger       *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	sessionRepo repository.CashSessionRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
	width int,
	logger *logrus.Logger,
) *PrinterService {
	if width <= 0 {
		width = 48
	}
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		width:        width,
		logger:       logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "null" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

func (s *PrinterService) header(ctx context.Context) entity.ReceiptHeader {
	header := entity.ReceiptHeader{StoreName: "Minha Loja"}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		return header
	}
	header.StoreName = settings.TradeName
	if settings.Address != nil {
		header.Address = *settings.Address
	}
	if settings.Phone != nil {
		header.Phone = *settings.Phone
	}
	if settings.Document != nil {
		header.Document = *settings.Document
	}
	return header
}

// PrintSaleReceipt fetches a sale (with details) and prints its coupon.
// The composed receipt is always returned so the handler can serve it as
// JSON when no printer hardware is configured.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header:     s.header(ctx),
		DocumentNo: fmt.Sprintf("%06d", sale.DocumentNo),
		Date:       sale.SaleDate.Format("02/01/2006 15:04"),
		Cashier:    sale.User.Name,
		SubTotal:   sale.Subtotal,
		Shipping:   sale.ShippingFee,
		Total:      sale.Total,
		Paid:       sale.AmountPaid,
		Change:     sale.ChangeGiven,
	}

	// Coupon shows the flat effect of the global chain, not the running
	// intermediates: everything between subtotal and shipping collapses into
	// one discount and one surcharge figure, replayed from the stored fields.
	afterDiscounts := money.Clamp0(money.Clamp0(sale.Subtotal.Sub(money.Percent(sale.Subtotal, sale.DiscountPercent))).Sub(sale.DiscountAmount))
	afterSurcharges := money.Clamp0(afterDiscounts.Add(money.Percent(afterDiscounts, sale.SurchargePercent)).Add(sale.SurchargeAmount))
	receipt.Discount = sale.Subtotal.Sub(afterDiscounts).Round(2)
	receipt.Surcharge = afterSurcharges.Sub(afterDiscounts).Round(2)

	if sale.Customer != nil {
		receipt.Customer = sale.Customer.Name
	}

	settings, _ := s.settingsRepo.Get(ctx)
	if settings != nil && settings.ReceiptFooter != nil {
		receipt.Footer = *settings.ReceiptFooter
	}

	for _, line := range sale.Lines {
		name := line.Product.Description
		if name == "" {
			name = "Produto"
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Quantity:  line.Quantity.String(),
			Name:      name,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		})
	}

	for _, p := range sale.Payments {
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			Description: p.Instrument.Description,
			Code:        p.Instrument.Kind.Code(),
			Amount:      p.AmountApplied,
		})
	}

	data := s.formatSaleReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		s.logger.WithError(err).WithField("sale_id", saleID).Error("printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// formatSaleReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) formatSaleReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.Document != "" {
		doc.TextF("CNPJ: %s", r.Header.Document)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Cupom:", r.DocumentNo).
		KeyValue("Data:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Operador:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Cliente:", r.Customer)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.StringFixed(2))
		doc.TextF("  @ %s", item.UnitPrice.StringFixed(2))
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", r.SubTotal.StringFixed(2))
	if r.Discount.IsPositive() {
		doc.KeyValue("Desconto:", "-"+r.Discount.StringFixed(2))
	}
	if r.Surcharge.IsPositive() {
		doc.KeyValue("Acrescimo:", r.Surcharge.StringFixed(2))
	}
	if r.Shipping.IsPositive() {
		doc.KeyValue("Frete:", r.Shipping.StringFixed(2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.StringFixed(2)).
		SetBold(false)

	for _, p := range r.Payments {
		doc.KeyValue(fmt.Sprintf("%s (%s):", p.Description, p.Code), p.Amount.StringFixed(2))
	}
	if r.Change.IsPositive() {
		doc.KeyValue("Troco:", r.Change.StringFixed(2))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Obrigado pela preferencia!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// PrintSessionReport prints the till close report for a cash session.
func (s *PrinterService) PrintSessionReport(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.GetWithMovements(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NewNotFoundError("Cash session")
	}

	doc := printer.NewDocument(s.width)

	header := s.header(ctx)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(header.StoreName).
		Text("FECHAMENTO DE CAIXA").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('=')

	doc.KeyValue("Abertura:", session.OpenedAt.Format("02/01/2006 15:04"))
	if session.ClosedAt != nil {
		doc.KeyValue("Fechamento:", session.ClosedAt.Format("02/01/2006 15:04"))
	}
	doc.KeyValue("Operador:", session.User.Name)

	doc.Separator('-')

	doc.KeyValue("Fundo inicial:", session.OpeningAmount.StringFixed(2)).
		KeyValue("Vendas (dinheiro):", session.SalesTotal.StringFixed(2)).
		KeyValue("Suprimentos:", session.SupplyTotal.StringFixed(2)).
		KeyValue("Sangrias:", "-"+session.WithdrawalTotal.StringFixed(2))

	if session.ExpectedAmount != nil {
		doc.SetBold(true).
			KeyValue("Esperado:", session.ExpectedAmount.StringFixed(2)).
			SetBold(false)
	}
	if session.DeclaredAmount != nil {
		doc.KeyValue("Contado:", session.DeclaredAmount.StringFixed(2))
	}
	if session.Deviation != nil {
		doc.SetBold(true).
			KeyValue("Diferenca:", session.Deviation.StringFixed(2)).
			SetBold(false)
	}

	if len(session.Movements) > 0 {
		doc.Separator('-').
			Text("Movimentos:")
		for _, m := range session.Movements {
			doc.KeyValue(
				fmt.Sprintf("%s %s", m.CreatedAt.Format("15:04"), m.Description),
				m.Amount.StringFixed(2),
			)
		}
	}

	doc.FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Error("printer error")
		return fmt.Errorf("failed to print session report: %w", err)
	}
	return nil
}

// TestPrint sends a short test coupon to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("TESTE DE IMPRESSORA").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-').
		Text("0123456789").
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}
