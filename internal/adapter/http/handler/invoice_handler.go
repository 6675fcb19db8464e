package handler

import (
	"strconv"

	"billing-engine/internal/adapter/http/dto"
	"billing-engine/internal/core/domain"
	"billing-engine/internal/service"
	"billing-engine/pkg/apperror"
	"billing-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceSvc *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceSvc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

// List handles GET /api/v1/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, apperror.Validation("invoice id must be a positive integer"))
		return
	}

	invoice, err := h.invoiceSvc.Fetch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toInvoiceResponse(*invoice))
}

// Create handles POST /api/v1/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	invoice, err := h.invoiceSvc.Create(c.Request.Context(), req.CustomerID, amount, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toInvoiceResponse(*invoice))
}

// PendingCount handles GET /api/v1/invoices/pending/count.
func (h *InvoiceHandler) PendingCount(c *gin.Context) {
	count, err := h.invoiceSvc.CountPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PendingCountResponse{Pending: count})
}

func toInvoiceResponse(inv domain.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount.Amount.String(),
		Currency:   string(inv.Amount.Currency),
		Status:     string(inv.Status),
	}
}
