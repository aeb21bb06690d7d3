package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/sangkips/receiptbook-api/pkg/money"
	"github.com/sangkips/receiptbook-api/pkg/pagination"
)

// ReceiptHandler handles receipt and payment HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	exportService  *service.ExportService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, exportService *service.ExportService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, exportService: exportService}
}

func centsPtr(v *int64) *money.Money {
	if v == nil {
		return nil
	}
	m := money.FromCents(*v)
	return &m
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateReceiptInput{
		Number:   req.Number,
		Customer: entity.Customer{Name: req.Customer.Name, Contact: req.Customer.Contact},
		Items:    make([]service.LineItemInput, 0, len(req.Items)),
		Total:    centsPtr(req.Total),
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.LineItemInput{
			ServiceName: item.ServiceName,
			Price:       centsPtr(item.Price),
			Quantity:    item.Quantity,
		})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), caller, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a single receipt with its payments
func (h *ReceiptHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// List handles the filtered, sorted and paged receipt listing
func (h *ReceiptHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), caller, listInput(filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Sorted handles listing every receipt in the order named by ?sort=
func (h *ReceiptHandler) Sorted(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	receipts, err := h.receiptService.GetReceiptsSorted(c.Request.Context(), caller, c.Query("sort"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}

// Export handles downloading the filtered listing as CSV or XLSX
func (h *ReceiptHandler) Export(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	format := filter.Format
	if format == "" {
		format = service.ExportCSV
	}

	file, err := h.exportService.ExportReceipts(c.Request.Context(), caller, listInput(filter), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Filename))
	c.Data(200, file.ContentType, file.Data)
}

func listInput(filter request.ReceiptFilterRequest) *service.ListReceiptsInput {
	return &service.ListReceiptsInput{
		Status: filter.Status,
		Search: filter.Search,
		Sort:   filter.Sort,
		Page:   pagination.Params{Page: filter.Page, PerPage: filter.PerPage},
	}
}

// Payments handles listing the payments of a receipt
func (h *ReceiptHandler) Payments(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	payments, err := h.receiptService.GetReceiptPayments(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// AddPayment handles recording a payment against a receipt
func (h *ReceiptHandler) AddPayment(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := receiptID(c)
	if !ok {
		return
	}

	var req request.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr)
			return
		}
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.AddPaymentInput{
		Method:        req.Method,
		Amount:        centsPtr(req.Amount),
		DisplayAmount: req.DisplayAmount,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	receipt, err := h.receiptService.AddPayment(c.Request.Context(), caller, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", receipt)
}
