package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receiptbook-api/pkg/money"
)

// CatalogHandler handles service item and customer HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateServiceItem handles registering a service item
func (h *CatalogHandler) CreateServiceItem(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req request.CreateServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.AddServiceItem(c.Request.Context(), caller, req.Name, money.FromCents(req.Price))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service item created successfully", item)
}

// ListServiceItems handles listing the service catalog
func (h *CatalogHandler) ListServiceItems(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	items, err := h.catalogService.GetServiceItems(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service items retrieved successfully", items)
}

// CreateCustomer handles registering a customer
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.catalogService.AddCustomer(c.Request.Context(), caller, req.Name, req.Contact)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// ListCustomers handles listing customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	customers, err := h.catalogService.GetCustomers(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}
