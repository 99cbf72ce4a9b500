package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermart-pos/internal/application/dto"
	"github.com/jhoicas/supermart-pos/internal/application/sales"
	"github.com/jhoicas/supermart-pos/internal/domain/entity"
)

// SalesHandler maneja la factura en curso, el historial y el recibo.
type SalesHandler struct {
	session  *sales.Session
	ledger   *sales.Ledger
	receipts sales.ReceiptRenderer
	taxRate  decimal.Decimal // tasa por defecto de la tienda
	showroom string          // sala por defecto
}

// NewSalesHandler construye el handler.
func NewSalesHandler(session *sales.Session, ledger *sales.Ledger, receipts sales.ReceiptRenderer, taxRate decimal.Decimal, showroom string) *SalesHandler {
	return &SalesHandler{session: session, ledger: ledger, receipts: receipts, taxRate: taxRate, showroom: showroom}
}

// Start POST /api/invoice
func (h *SalesHandler) Start(c *fiber.Ctx) error {
	var in dto.StartInvoiceRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	taxRate := h.taxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	showroom := in.Showroom
	if showroom == "" {
		showroom = h.showroom
	}
	if err := h.session.Start(in.CustomerID, showroom, taxRate); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Current GET /api/invoice
func (h *SalesHandler) Current(c *fiber.Ctx) error {
	view, err := h.session.CurrentInvoice()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.InvoiceViewResponse{
		Customer: dto.CustomerResponse{ID: view.Customer.ID, Name: view.Customer.Name},
		Showroom: view.Showroom,
		TaxRate:  view.TaxRate,
		Lines:    lineResponses(view.Lines),
		Totals: dto.TotalsResponse{
			Subtotal:   view.Totals.Subtotal,
			Discount:   view.Totals.Discount,
			Tax:        view.Totals.Tax,
			GrandTotal: view.Totals.GrandTotal,
		},
	})
}

// AddLine POST /api/invoice/lines
func (h *SalesHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.session.AddLine(in.ItemID, in.Qty); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ChangeQty PUT /api/invoice/lines/:index
func (h *SalesHandler) ChangeQty(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.ChangeQtyRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.session.ChangeLineQuantity(index, in.Qty); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveLine DELETE /api/invoice/lines/:index
func (h *SalesHandler) RemoveLine(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	if err := h.session.RemoveLine(index); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear POST /api/invoice/clear — libera reservas, la factura sigue abierta.
func (h *SalesHandler) Clear(c *fiber.Ctx) error {
	if err := h.session.Clear(); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDiscount POST /api/invoice/discount
func (h *SalesHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if err := h.session.SetDiscount(in.Kind, in.Value); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm POST /api/invoice/confirm
func (h *SalesHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	inv, err := h.session.Confirm(in.PaymentMethod)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saleResponse(inv))
}

// Discard DELETE /api/invoice
func (h *SalesHandler) Discard(c *fiber.Ctx) error {
	if err := h.session.Discard(); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History GET /api/sales
func (h *SalesHandler) History(c *fiber.Ctx) error {
	out := make([]dto.SaleResponse, 0, h.ledger.Len())
	for inv := range h.ledger.History() {
		out = append(out, saleResponse(inv))
	}
	return c.JSON(out)
}

// Receipt GET /api/sales/:id/receipt — recibo en PDF.
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	inv, err := h.ledger.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	raw, err := h.receipts.Render(inv)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(raw)
}

func lineResponses(lines []sales.LineView) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return out
}

func saleResponse(inv *entity.ConfirmedInvoice) dto.SaleResponse {
	lines := make([]dto.LineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, dto.LineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return dto.SaleResponse{
		ID:            inv.ID,
		Customer:      dto.CustomerResponse{ID: inv.Customer.ID, Name: inv.Customer.Name},
		Showroom:      inv.Showroom,
		PaymentMethod: inv.PaymentMethod,
		TaxRate:       inv.TaxRate,
		Lines:         lines,
		Totals: dto.TotalsResponse{
			Subtotal:   inv.Subtotal,
			Discount:   inv.Discount,
			Tax:        inv.Tax,
			GrandTotal: inv.GrandTotal,
		},
		ConfirmedAt: inv.ConfirmedAt,
	}
}
