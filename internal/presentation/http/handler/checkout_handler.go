package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/request"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the interactive register workflow: the cart, its
// live totals and the payment session.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func registerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return uuid.Nil, false
	}
	return id, true
}

func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "Invalid line index")
		return 0, false
	}
	return index, true
}

// Open creates a new empty register for the authenticated operator
func (h *CheckoutHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view := h.checkoutService.OpenRegister(c.Request.Context(), *userID)
	response.Created(c, "Register opened successfully", view)
}

// Get returns the register state
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.GetRegister(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register retrieved successfully", view)
}

// Close discards a register and everything on it
func (h *CheckoutHandler) Close(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	if err := h.checkoutService.CloseRegister(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddItem adds a product to the cart by code or barcode
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.AddItem(c.Request.Context(), id, req.Code, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added successfully", view)
}

// RemoveLine deletes a cart line by index
func (h *CheckoutHandler) RemoveLine(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.RemoveLine(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line removed successfully", view)
}

// EditLine applies a single-field edit to a cart line
func (h *CheckoutHandler) EditLine(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	var req request.EditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.EditLine(c.Request.Context(), id, index, service.LineEdit(req.Field), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line updated successfully", view)
}

// SetAdjustments updates the sale-wide discount, surcharge and shipping
func (h *CheckoutHandler) SetAdjustments(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.GlobalAdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.SetGlobalAdjustments(c.Request.Context(), id, &service.GlobalAdjustmentsInput{
		DiscountPercent:  req.DiscountPercent,
		DiscountAmount:   req.DiscountAmount,
		SurchargePercent: req.SurchargePercent,
		SurchargeAmount:  req.SurchargeAmount,
		ShippingFee:      req.ShippingFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Adjustments updated successfully", view)
}

// SetCustomer binds a customer to the register; null clears it
func (h *CheckoutHandler) SetCustomer(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		parsed, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &parsed
	}

	view, err := h.checkoutService.SetCustomer(c.Request.Context(), id, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", view)
}

// SetNotes attaches free-form notes to the in-progress sale
func (h *CheckoutHandler) SetNotes(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.SetNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes updated successfully", view)
}

// StartPayment opens the tender session over the active instrument catalog
func (h *CheckoutHandler) StartPayment(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.StartPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment started successfully", view)
}

// CancelPayment drops the tender session, keeping the cart
func (h *CheckoutHandler) CancelPayment(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.CancelPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment cancelled successfully", view)
}

// SelectTenderKind starts a tender entry for the given kind
func (h *CheckoutHandler) SelectTenderKind(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.SelectTenderKindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.SelectTenderKind(c.Request.Context(), id, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender kind selected successfully", view)
}

// ChooseInstrument resolves an ambiguous kind selection
func (h *CheckoutHandler) ChooseInstrument(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.ChooseInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	instrumentID, err := uuid.Parse(req.InstrumentID)
	if err != nil {
		response.BadRequest(c, "Invalid instrument ID")
		return
	}

	view, err := h.checkoutService.ChooseInstrument(c.Request.Context(), id, instrumentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Instrument chosen successfully", view)
}

// SubmitAmount applies a tender amount through the bound instrument
func (h *CheckoutHandler) SubmitAmount(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	var req request.SubmitAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.checkoutService.SubmitAmount(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender applied successfully", view)
}

// CancelEntry abandons the tender entry in progress
func (h *CheckoutHandler) CancelEntry(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.CancelEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender entry cancelled successfully", view)
}

// RemoveTender removes an applied tender entry by index
func (h *CheckoutHandler) RemoveTender(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	view, err := h.checkoutService.RemoveTender(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender removed successfully", view)
}

// Finalize persists the settled sale and resets the register
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	id, ok := registerID(c)
	if !ok {
		return
	}

	sale, err := h.checkoutService.Finalize(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale finalized successfully", sale)
}
