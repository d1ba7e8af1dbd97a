package entity

import "time"

// Deal holds the financing terms for one invoice
type Deal struct {
	ID                  string     `json:"id"`
	InvoiceID           string     `json:"invoiceId"`
	Status              string     `json:"status"`
	DiscountRate        float64    `json:"discountRate"`
	DiscountFee         float64    `json:"discountFee"`
	CashPrice           float64    `json:"cashPrice"`
	TransactionFee      float64    `json:"transactionFee"`
	ProposalRef         *string    `json:"proposalRef"`
	SourceSystem        *string    `json:"sourceSystem"`
	FundingReference    *string    `json:"fundingReference"`
	SettlementReference *string    `json:"settlementReference"`
	CreatedBy           *string    `json:"createdBy,omitempty"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	UpdatedBy           *string    `json:"updatedBy,omitempty"`
	SubmittedBy         *string    `json:"submittedBy,omitempty"`
	SubmittedAt         *time.Time `json:"submittedAt,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Deal status constants
const (
	DealStatusDraft     = "DRAFT"
	DealStatusSubmitted = "SUBMITTED"
	DealStatusApproved  = "APPROVED"
	DealStatusRejected  = "REJECTED"
)

// DealUpdateRequest carries the editable deal terms. Nil fields are left unchanged.
type DealUpdateRequest struct {
	DiscountRate   *float64 `json:"discountRate,omitempty"`
	TransactionFee *float64 `json:"transactionFee,omitempty"`
	SourceSystem   *string  `json:"sourceSystem,omitempty"`
}

// DealResult is the platform's deal payload, including the approval tasks
// of the deal's workflow once one exists.
type DealResult struct {
	Deal            Deal           `json:"deal"`
	Submitted       *bool          `json:"submitted"`
	WorkflowCreated *bool          `json:"workflowCreated,omitempty"`
	ApprovalTasks   []ApprovalTask `json:"approvalTasks,omitempty"`
}
