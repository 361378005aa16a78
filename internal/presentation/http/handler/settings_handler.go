package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/application/service"
	"github.com/sellista/pos-checkout-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the company settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the company settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		TradeName         *string `json:"trade_name"`
		LegalName         *string `json:"legal_name"`
		Document          *string `json:"document"`
		Address           *string `json:"address"`
		Phone             *string `json:"phone"`
		ReceiptFooter     *string `json:"receipt_footer"`
		ControlTill       *bool   `json:"control_till"`
		DefaultCustomerID *string `json:"default_customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateSettingsInput{
		TradeName:     req.TradeName,
		LegalName:     req.LegalName,
		Document:      req.Document,
		Address:       req.Address,
		Phone:         req.Phone,
		ReceiptFooter: req.ReceiptFooter,
		ControlTill:   req.ControlTill,
	}

	if req.DefaultCustomerID != nil {
		customerID, err := uuid.Parse(*req.DefaultCustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid default customer ID")
			return
		}
		input.DefaultCustomerID = &customerID
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
