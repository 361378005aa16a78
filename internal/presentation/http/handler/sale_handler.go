package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/request"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles a complete sale submitted in one shot, lines and tenders
// together. The server recomputes every total and replays the tenders
// through the payment workflow before persisting.
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateSaleInput{
		UserID:           *userID,
		Notes:            req.Notes,
		DiscountPercent:  req.DiscountPercent,
		DiscountAmount:   req.DiscountAmount,
		SurchargePercent: req.SurchargePercent,
		SurchargeAmount:  req.SurchargeAmount,
		ShippingFee:      req.ShippingFee,
	}

	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+line.ProductID)
			return
		}
		input.Lines = append(input.Lines, service.SaleLineInput{
			ProductID:        productID,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			DiscountPercent:  line.DiscountPercent,
			DiscountAmount:   line.DiscountAmount,
			SurchargePercent: line.SurchargePercent,
			SurchargeAmount:  line.SurchargeAmount,
		})
	}

	for _, tender := range req.Tenders {
		instrumentID, err := uuid.Parse(tender.InstrumentID)
		if err != nil {
			response.BadRequest(c, "Invalid instrument ID: "+tender.InstrumentID)
			return
		}
		input.Tenders = append(input.Tenders, service.SaleTenderInput{
			InstrumentID: instrumentID,
			Amount:       tender.Amount,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// List handles listing sales with filtering
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	pag := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	pag.Validate()

	params := &repository.SaleFilterParams{
		Pagination: pag,
		Cancelled:  filter.Cancelled,
	}

	if filter.CustomerID != "" {
		if customerID, err := uuid.Parse(filter.CustomerID); err == nil {
			params.CustomerID = &customerID
		}
	}
	if filter.SessionID != "" {
		if sessionID, err := uuid.Parse(filter.SessionID); err == nil {
			params.CashSessionID = &sessionID
		}
	}
	if filter.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			params.StartDate = &from
		}
	}
	if filter.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			end := to.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(pag.Page, pag.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with lines and payments
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Cancel handles cancelling a sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}
