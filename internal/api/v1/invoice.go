package v1

import (
	"net/http"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/types"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

func NewInvoiceHandler(
	service service.InvoiceService,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create an invoice
// @Description Validate and persist an invoice with its line items
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get invoices
// @Description List all invoices, newest issue date first
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	resp, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an invoice
// @Description Get one invoice with its line items
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary New draft invoice
// @Description Build an empty invoice prefilled from the user's defaults
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.DraftInvoiceResponse
// @Router /invoices/draft [get]
func (h *InvoiceHandler) NewDraftInvoice(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())

	resp, err := h.service.NewDraftInvoice(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Compute invoice totals
// @Description Compute subtotal, tax and total for an unsaved invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 200 {object} dto.InvoiceTotalsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /invoices/totals [post]
func (h *InvoiceHandler) ComputeTotals(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ComputeInvoiceTotals(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set payment date
// @Description Record or clear an invoice's payment date
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment body dto.SetPaymentDateRequest true "Payment date"
// @Success 200 {object} map[string]string
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id}/payment [patch]
func (h *InvoiceHandler) SetPaymentDate(c *gin.Context) {
	var req dto.SetPaymentDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var datePaid *time.Time
	if req.DatePaid != nil {
		parsed, ok := types.ParseDate(*req.DatePaid)
		if !ok {
			c.Error(ierr.NewError("invalid payment date").
				WithHint("Payment date must be YYYY-MM-DD or RFC3339").
				Mark(ierr.ErrValidation))
			return
		}
		datePaid = &parsed
	}

	if err := h.service.SetPaymentDate(c.Request.Context(), c.Param("id"), datePaid); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Delete an invoice
// @Description Delete an invoice and its line items
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} middleware.ErrorResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.service.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Email invoice link
// @Description Build a prefilled mailto link for an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 200 {object} dto.EmailLinkResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /invoices/email-link [post]
func (h *InvoiceHandler) EmailInvoiceLink(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.EmailInvoiceLink(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get customers
// @Description List known customers for invoice autofill
// @Tags Customers
// @Produce json
// @Success 200 {array} customer.Customer
// @Router /customers [get]
func (h *InvoiceHandler) GetCustomers(c *gin.Context) {
	resp, err := h.service.GetCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get products
// @Description List known products with their last used prices
// @Tags Products
// @Produce json
// @Success 200 {array} resource.Resource
// @Router /products [get]
func (h *InvoiceHandler) GetProducts(c *gin.Context) {
	resp, err := h.service.GetProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
