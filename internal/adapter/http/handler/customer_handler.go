package handler

import (
	"strconv"

	"billing-engine/internal/adapter/http/dto"
	"billing-engine/internal/core/domain"
	"billing-engine/internal/service"
	"billing-engine/pkg/apperror"
	"billing-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerSvc *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerSvc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerSvc: customerSvc}
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toCustomerResponse(cust))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, apperror.Validation("customer id must be a positive integer"))
		return
	}

	customer, err := h.customerSvc.Fetch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toCustomerResponse(*customer))
}

// Create handles POST /api/v1/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customer, err := h.customerSvc.Create(c.Request.Context(), req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCustomerResponse(*customer))
}

func toCustomerResponse(cust domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:       cust.ID,
		Currency: string(cust.Currency),
	}
}
