package port

import (
	"context"
	"encoding/json"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// TaskAPI defines the platform's approval task operations
type TaskAPI interface {
	// ListTasks returns all tasks visible to the caller; an empty status lists every status.
	ListTasks(ctx context.Context, status entity.TaskStatus) ([]entity.ApprovalTask, error)
	PerformTaskAction(ctx context.Context, taskID string, req entity.TaskActionRequest) (*entity.WorkflowSummary, error)
}

// InvoiceAPI defines the platform's invoice and deal operations
type InvoiceAPI interface {
	ListInvoices(ctx context.Context) ([]entity.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*entity.InvoiceCreateResult, error)
	CreateInvoice(ctx context.Context, req *entity.InvoiceCreateRequest) (*entity.InvoiceCreateResult, error)
	GetDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error)
	UpdateDeal(ctx context.Context, invoiceID string, req entity.DealUpdateRequest) (*entity.DealResult, error)
	SubmitDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error)
	ListInvoiceEvents(ctx context.Context, invoiceID string) ([]entity.InvoiceEvent, error)
}

// AuditQuery filters the platform's audit log
type AuditQuery struct {
	EntityType string `form:"entityType"`
	EntityID   string `form:"entityId"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// AdminAPI defines the platform's configuration and lookup operations
type AdminAPI interface {
	ListApprovalRules(ctx context.Context) ([]entity.ApprovalRule, error)
	CreateApprovalRule(ctx context.Context, rule *entity.ApprovalRule) (*entity.ApprovalRule, error)
	DeactivateApprovalRule(ctx context.Context, ruleName string) error

	ListPricingRules(ctx context.Context) ([]entity.PricingRule, error)
	CreatePricingRule(ctx context.Context, rule *entity.PricingRule) (*entity.PricingRule, error)
	DisablePricingRule(ctx context.Context, ruleID string) error

	ListPermissions(ctx context.Context) ([]entity.SystemPermission, error)
	ListRoles(ctx context.Context) ([]entity.SystemRole, error)
	CreateRole(ctx context.Context, role *entity.SystemRole) (*entity.SystemRole, error)
	UpdateRole(ctx context.Context, roleID string, role *entity.SystemRole) (*entity.SystemRole, error)

	// Workflow and audit payloads are passed through undecoded
	GetWorkflow(ctx context.Context, workflowID string) (json.RawMessage, error)
	ListAudit(ctx context.Context, query AuditQuery) (json.RawMessage, error)
}

// AuthAPI defines the platform's development token endpoint
type AuthAPI interface {
	RequestDevToken(ctx context.Context, userType string) (*entity.DevToken, error)
}

// PlatformClient is the full surface of the invoice-financing API used by the console
type PlatformClient interface {
	TaskAPI
	InvoiceAPI
	AdminAPI
	AuthAPI
}
