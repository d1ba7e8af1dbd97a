package entity

import "time"

// Invoice represents a receivable submitted for financing
type Invoice struct {
	ID                string       `json:"id"`
	ExternalInvoiceID string       `json:"externalInvoiceId"`
	InvoiceNumber     string       `json:"invoiceNumber"`
	DebtorRef         string       `json:"debtorRef"`
	SellerRef         string       `json:"sellerRef"`
	InvoiceAmount     float64      `json:"invoiceAmount"`
	Currency          string       `json:"currency"`
	IssueDate         string       `json:"issueDate"`
	DueDate           string       `json:"dueDate"`
	TenorDays         int          `json:"tenorDays"`
	DocumentRef       string       `json:"documentRef"`
	Status            string       `json:"status"`
	Deal              *Deal        `json:"deal,omitempty"`
	IssuerDetails     PartyDetails `json:"issuerDetails"`
	DebtorDetails     PartyDetails `json:"debtorDetails"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// Invoice status constants
const (
	InvoiceStatusDealCreated      = "DEAL_CREATED"
	InvoiceStatusRequiresDealInfo = "REQUIRES_DEAL_INFO"
	InvoiceStatusDraft            = "DRAFT"
)

// PartyDetails describes the issuer or the debtor of an invoice
type PartyDetails struct {
	Name      string       `json:"name"`
	Reference string       `json:"reference"`
	Address   string       `json:"address"`
	Contact   PartyContact `json:"contact"`
}

// PartyContact is the contact person of a party
type PartyContact struct {
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// DiscountRateOverrides lets the submitter pin pricing instead of using pricing rules
type DiscountRateOverrides struct {
	ProposalRef    *string `json:"proposalRef,omitempty"`
	DiscountRate   float64 `json:"discountRate"`
	TransactionFee float64 `json:"transactionFee"`
	SourceSystem   string  `json:"sourceSystem"`
}

// InvoiceCreateRequest is the payload for registering a new invoice
type InvoiceCreateRequest struct {
	ExternalInvoiceRef    string                 `json:"externalInvoiceRef,omitempty"`
	InvoiceNumber         string                 `json:"invoiceNumber" binding:"required"`
	DebtorRef             string                 `json:"debtorRef" binding:"required"`
	SellerRef             string                 `json:"sellerRef" binding:"required"`
	InvoiceAmount         float64                `json:"invoiceAmount" binding:"required,gt=0"`
	Currency              string                 `json:"currency" binding:"required,len=3"`
	IssueDate             string                 `json:"issueDate" binding:"required"`
	DueDate               string                 `json:"dueDate" binding:"required"`
	TenorDays             int                    `json:"tenorDays"`
	DocumentRef           string                 `json:"documentRef"`
	IssuerDetails         PartyDetails           `json:"issuerDetails"`
	DebtorDetails         PartyDetails           `json:"debtorDetails"`
	DiscountRateOverrides *DiscountRateOverrides `json:"discountRateOverrides,omitempty"`
}

// InvoiceCreateResult is the platform's answer to an invoice registration
type InvoiceCreateResult struct {
	Invoice       Invoice  `json:"invoice"`
	DealCreated   bool     `json:"dealCreated"`
	MissingFields []string `json:"missingFields"`
}
