package service

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// mockTaskAPI is a testify mock of port.TaskAPI
type mockTaskAPI struct {
	mock.Mock
}

func (m *mockTaskAPI) ListTasks(ctx context.Context, status entity.TaskStatus) ([]entity.ApprovalTask, error) {
	args := m.Called(ctx, status)
	tasks, _ := args.Get(0).([]entity.ApprovalTask)
	return tasks, args.Error(1)
}

func (m *mockTaskAPI) PerformTaskAction(ctx context.Context, taskID string, req entity.TaskActionRequest) (*entity.WorkflowSummary, error) {
	args := m.Called(ctx, taskID, req)
	summary, _ := args.Get(0).(*entity.WorkflowSummary)
	return summary, args.Error(1)
}

// mockInvoiceAPI is a testify mock of port.InvoiceAPI
type mockInvoiceAPI struct {
	mock.Mock
}

func (m *mockInvoiceAPI) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	args := m.Called(ctx)
	invoices, _ := args.Get(0).([]entity.Invoice)
	return invoices, args.Error(1)
}

func (m *mockInvoiceAPI) GetInvoice(ctx context.Context, invoiceID string) (*entity.InvoiceCreateResult, error) {
	args := m.Called(ctx, invoiceID)
	result, _ := args.Get(0).(*entity.InvoiceCreateResult)
	return result, args.Error(1)
}

func (m *mockInvoiceAPI) CreateInvoice(ctx context.Context, req *entity.InvoiceCreateRequest) (*entity.InvoiceCreateResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*entity.InvoiceCreateResult)
	return result, args.Error(1)
}

func (m *mockInvoiceAPI) GetDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error) {
	args := m.Called(ctx, invoiceID)
	result, _ := args.Get(0).(*entity.DealResult)
	return result, args.Error(1)
}

func (m *mockInvoiceAPI) UpdateDeal(ctx context.Context, invoiceID string, req entity.DealUpdateRequest) (*entity.DealResult, error) {
	args := m.Called(ctx, invoiceID, req)
	result, _ := args.Get(0).(*entity.DealResult)
	return result, args.Error(1)
}

func (m *mockInvoiceAPI) SubmitDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error) {
	args := m.Called(ctx, invoiceID)
	result, _ := args.Get(0).(*entity.DealResult)
	return result, args.Error(1)
}

func (m *mockInvoiceAPI) ListInvoiceEvents(ctx context.Context, invoiceID string) ([]entity.InvoiceEvent, error) {
	args := m.Called(ctx, invoiceID)
	events, _ := args.Get(0).([]entity.InvoiceEvent)
	return events, args.Error(1)
}

// mockAdminAPI records calls through function fields
type mockAdminAPI struct {
	createApprovalRuleFunc func(ctx context.Context, rule *entity.ApprovalRule) (*entity.ApprovalRule, error)
	createPricingRuleFunc  func(ctx context.Context, rule *entity.PricingRule) (*entity.PricingRule, error)
	listAuditFunc          func(ctx context.Context, query port.AuditQuery) (json.RawMessage, error)
	deactivated            []string
}

func (m *mockAdminAPI) ListApprovalRules(ctx context.Context) ([]entity.ApprovalRule, error) {
	return []entity.ApprovalRule{}, nil
}

func (m *mockAdminAPI) CreateApprovalRule(ctx context.Context, rule *entity.ApprovalRule) (*entity.ApprovalRule, error) {
	if m.createApprovalRuleFunc != nil {
		return m.createApprovalRuleFunc(ctx, rule)
	}
	return rule, nil
}

func (m *mockAdminAPI) DeactivateApprovalRule(ctx context.Context, ruleName string) error {
	m.deactivated = append(m.deactivated, ruleName)
	return nil
}

func (m *mockAdminAPI) ListPricingRules(ctx context.Context) ([]entity.PricingRule, error) {
	return []entity.PricingRule{}, nil
}

func (m *mockAdminAPI) CreatePricingRule(ctx context.Context, rule *entity.PricingRule) (*entity.PricingRule, error) {
	if m.createPricingRuleFunc != nil {
		return m.createPricingRuleFunc(ctx, rule)
	}
	return rule, nil
}

func (m *mockAdminAPI) DisablePricingRule(ctx context.Context, ruleID string) error {
	return nil
}

func (m *mockAdminAPI) ListPermissions(ctx context.Context) ([]entity.SystemPermission, error) {
	return []entity.SystemPermission{}, nil
}

func (m *mockAdminAPI) ListRoles(ctx context.Context) ([]entity.SystemRole, error) {
	return []entity.SystemRole{}, nil
}

func (m *mockAdminAPI) CreateRole(ctx context.Context, role *entity.SystemRole) (*entity.SystemRole, error) {
	return role, nil
}

func (m *mockAdminAPI) UpdateRole(ctx context.Context, roleID string, role *entity.SystemRole) (*entity.SystemRole, error) {
	return role, nil
}

func (m *mockAdminAPI) GetWorkflow(ctx context.Context, workflowID string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"` + workflowID + `"}`), nil
}

func (m *mockAdminAPI) ListAudit(ctx context.Context, query port.AuditQuery) (json.RawMessage, error) {
	if m.listAuditFunc != nil {
		return m.listAuditFunc(ctx, query)
	}
	return json.RawMessage(`{"items":[]}`), nil
}

// mockJournal keeps records in memory
type mockJournal struct {
	records    []*entity.ActionRecord
	outcomes   []string
	recordErr  error
	outcomeErr error
}

func (m *mockJournal) Record(ctx context.Context, record *entity.ActionRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	if record.ID == "" {
		record.ID = "rec-1"
	}
	copied := *record
	m.records = append(m.records, &copied)
	return nil
}

func (m *mockJournal) MarkOutcome(ctx context.Context, record *entity.ActionRecord) error {
	m.outcomes = append(m.outcomes, record.Outcome)
	return m.outcomeErr
}

func (m *mockJournal) ListRecent(ctx context.Context, limit int) ([]*entity.ActionRecord, error) {
	return m.records, nil
}

func (m *mockJournal) ListByActor(ctx context.Context, actorSubject string, limit int) ([]*entity.ActionRecord, error) {
	mine := []*entity.ActionRecord{}
	for _, r := range m.records {
		if r.ActorSubject == actorSubject {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

func entityIdentity(subject string, roles ...string) entity.Identity {
	return entity.Identity{SubjectID: subject, Roles: roles}
}
