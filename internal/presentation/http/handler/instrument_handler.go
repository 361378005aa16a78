package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
)

// InstrumentHandler handles tender instrument HTTP requests
type InstrumentHandler struct {
	instrumentService *service.InstrumentService
}

// NewInstrumentHandler creates a new instrument handler
func NewInstrumentHandler(instrumentService *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{instrumentService: instrumentService}
}

// List handles listing instruments. ?active=true restricts to the catalog
// offered at the register.
func (h *InstrumentHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	instruments, err := h.instrumentService.ListInstruments(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Instruments retrieved successfully", instruments)
}

// Create handles creating an instrument
func (h *InstrumentHandler) Create(c *gin.Context) {
	var req struct {
		Description        string          `json:"description" binding:"required"`
		Kind               enum.TenderKind `json:"kind"`
		AllowsInstallments bool            `json:"allows_installments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	instrument, err := h.instrumentService.CreateInstrument(c.Request.Context(), &service.CreateInstrumentInput{
		Description:        req.Description,
		Kind:               req.Kind,
		AllowsInstallments: req.AllowsInstallments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Instrument created successfully", instrument)
}

// Get handles getting a single instrument
func (h *InstrumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid instrument ID")
		return
	}

	instrument, err := h.instrumentService.GetInstrument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Instrument retrieved successfully", instrument)
}

// Update handles updating an instrument
func (h *InstrumentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid instrument ID")
		return
	}

	var req struct {
		Description        *string          `json:"description"`
		Kind               *enum.TenderKind `json:"kind"`
		AllowsInstallments *bool            `json:"allows_installments"`
		Active             *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	instrument, err := h.instrumentService.UpdateInstrument(c.Request.Context(), id, &service.UpdateInstrumentInput{
		Description:        req.Description,
		Kind:               req.Kind,
		AllowsInstallments: req.AllowsInstallments,
		Active:             req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Instrument updated successfully", instrument)
}

// Delete handles deleting an instrument
func (h *InstrumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid instrument ID")
		return
	}

	if err := h.instrumentService.DeleteInstrument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
