package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ListInvoices retrieves all invoices
func (c *Client) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return getList[entity.Invoice](ctx, c, "/invoices", nil)
}

// GetInvoice retrieves one invoice
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*entity.InvoiceCreateResult, error) {
	return sendItem[entity.InvoiceCreateResult](ctx, c, http.MethodGet, invoicePath(invoiceID), nil)
}

// CreateInvoice registers a new invoice; the platform creates the deal when pricing allows
func (c *Client) CreateInvoice(ctx context.Context, req *entity.InvoiceCreateRequest) (*entity.InvoiceCreateResult, error) {
	return sendItem[entity.InvoiceCreateResult](ctx, c, http.MethodPost, "/invoices", req)
}

// GetDeal retrieves the invoice's deal and its approval tasks
func (c *Client) GetDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error) {
	return sendItem[entity.DealResult](ctx, c, http.MethodGet, invoicePath(invoiceID)+"/deal", nil)
}

// UpdateDeal changes the terms of a draft deal
func (c *Client) UpdateDeal(ctx context.Context, invoiceID string, req entity.DealUpdateRequest) (*entity.DealResult, error) {
	return sendItem[entity.DealResult](ctx, c, http.MethodPatch, invoicePath(invoiceID)+"/deal", req)
}

// SubmitDeal submits a draft deal, which starts its approval workflow
func (c *Client) SubmitDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error) {
	return sendItem[entity.DealResult](ctx, c, http.MethodPost, invoicePath(invoiceID)+"/deal/submit", nil)
}

// ListInvoiceEvents retrieves the invoice's audit events
func (c *Client) ListInvoiceEvents(ctx context.Context, invoiceID string) ([]entity.InvoiceEvent, error) {
	return getList[entity.InvoiceEvent](ctx, c, invoicePath(invoiceID)+"/events", nil)
}

func invoicePath(invoiceID string) string {
	return "/invoices/" + url.PathEscape(invoiceID)
}
