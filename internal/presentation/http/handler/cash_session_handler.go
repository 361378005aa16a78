package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
)

// CashSessionHandler handles till open/close and drawer movement requests
type CashSessionHandler struct {
	sessionService *service.CashSessionService
}

// NewCashSessionHandler creates a new cash session handler
func NewCashSessionHandler(sessionService *service.CashSessionService) *CashSessionHandler {
	return &CashSessionHandler{sessionService: sessionService}
}

// Open handles opening the till
func (h *CashSessionHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		OpeningAmount float64 `json:"opening_amount"`
		Notes         *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), &service.OpenSessionInput{
		UserID:        *userID,
		OpeningAmount: req.OpeningAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened successfully", session)
}

// GetCurrent returns the open session, 404 when the till is closed
func (h *CashSessionHandler) GetCurrent(c *gin.Context) {
	session, err := h.sessionService.GetCurrent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved successfully", session)
}

// Supply handles recording cash added to the drawer
func (h *CashSessionHandler) Supply(c *gin.Context) {
	var req struct {
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		Description string  `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	movement, err := h.sessionService.RegisterSupply(c.Request.Context(), &service.MovementInput{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supply recorded successfully", movement)
}

// Withdrawal handles recording cash taken out of the drawer
func (h *CashSessionHandler) Withdrawal(c *gin.Context) {
	var req struct {
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		Description string  `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	movement, err := h.sessionService.RegisterWithdrawal(c.Request.Context(), &service.MovementInput{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Withdrawal recorded successfully", movement)
}

// Close handles closing the till against the counted drawer amount
func (h *CashSessionHandler) Close(c *gin.Context) {
	var req struct {
		DeclaredAmount float64 `json:"declared_amount"`
		ClosingNotes   *string `json:"closing_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), &service.CloseSessionInput{
		DeclaredAmount: req.DeclaredAmount,
		ClosingNotes:   req.ClosingNotes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed successfully", session)
}

// Get handles getting a session with its movement ledger
func (h *CashSessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved successfully", session)
}

// List handles listing past sessions
func (h *CashSessionHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	sessions, total, err := h.sessionService.ListSessions(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sessions, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Cash sessions retrieved successfully", result)
}
