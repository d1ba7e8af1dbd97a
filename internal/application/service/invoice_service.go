package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/approval"
	"github.com/garyjia/finance-console/internal/domain/entity"
	"github.com/garyjia/finance-console/internal/domain/workflow"
	"github.com/garyjia/finance-console/pkg/utils"
)

// InvoiceDetailView is everything the invoice page shows, derived fresh on every call
type InvoiceDetailView struct {
	Invoice       entity.Invoice          `json:"invoice"`
	Deal          *entity.Deal            `json:"deal"`
	ApprovalTasks []entity.ApprovalTask   `json:"approvalTasks"`
	Levels        []approval.LevelSummary `json:"levels"`
	Timeline      []approval.TimelineItem `json:"timeline"`
	DealActions   DealActions             `json:"dealActions"`
	SelectedTask  *TaskView               `json:"selectedTask,omitempty"`
}

// DealActions tells the invoice page which deal controls to enable
type DealActions struct {
	CanEdit   bool               `json:"canEdit"`
	CanSubmit bool               `json:"canSubmit"`
	Permitted []workflow.Trigger `json:"permitted"`
}

// dealActionsFor derives the deal controls from its lifecycle state.
// No deal, or a status the lifecycle does not know, allows nothing.
func dealActionsFor(deal *entity.Deal) DealActions {
	actions := DealActions{Permitted: []workflow.Trigger{}}
	if deal == nil {
		return actions
	}
	lifecycle, err := workflow.DealLifecycle(deal.Status)
	if err != nil {
		return actions
	}
	actions.CanEdit = lifecycle.CanFire(workflow.TriggerEdit)
	actions.CanSubmit = lifecycle.CanFire(workflow.TriggerSubmit)
	actions.Permitted = lifecycle.PermittedTriggers()
	return actions
}

// InvoiceService manages invoices, their deals and the derived approval views
type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]entity.Invoice, error)
	CreateInvoice(ctx context.Context, req *entity.InvoiceCreateRequest) (*entity.InvoiceCreateResult, error)

	// GetInvoiceDetail assembles the invoice, its deal, the level summaries and the timeline.
	// When selectedTaskID is set, the task's eligibility for the user is included.
	GetInvoiceDetail(ctx context.Context, identity entity.Identity, invoiceID, selectedTaskID string) (*InvoiceDetailView, error)

	UpdateDeal(ctx context.Context, invoiceID string, req entity.DealUpdateRequest) (*entity.DealResult, error)
	SubmitDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error)
}

// NotFoundChecker reports whether an error from the platform means "does not exist"
type NotFoundChecker func(err error) bool

type invoiceServiceImpl struct {
	invoices   port.InvoiceAPI
	isNotFound NotFoundChecker
	logger     Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices port.InvoiceAPI, isNotFound NotFoundChecker, logger Logger) InvoiceService {
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}
	return &invoiceServiceImpl{
		invoices:   invoices,
		isNotFound: isNotFound,
		logger:     logger,
	}
}

// ListInvoices lists all invoices
func (s *invoiceServiceImpl) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// CreateInvoice validates and registers a new invoice
func (s *invoiceServiceImpl) CreateInvoice(ctx context.Context, req *entity.InvoiceCreateRequest) (*entity.InvoiceCreateResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := utils.ValidateCurrency(req.Currency); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidateAmount(req.InvoiceAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.InvoiceNumber = utils.SanitizeString(req.InvoiceNumber)

	result, err := s.invoices.CreateInvoice(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("Invoice created",
		"invoice_id", result.Invoice.ID,
		"deal_created", result.DealCreated,
		"missing_fields", len(result.MissingFields))

	return result, nil
}

// GetInvoiceDetail assembles the invoice detail view
func (s *invoiceServiceImpl) GetInvoiceDetail(ctx context.Context, identity entity.Identity, invoiceID, selectedTaskID string) (*InvoiceDetailView, error) {
	var (
		invoice *entity.InvoiceCreateResult
		deal    *entity.DealResult
		events  []entity.InvoiceEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoice, err = s.invoices.GetInvoice(gctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		deal, err = s.invoices.GetDeal(gctx, invoiceID)
		if err != nil {
			// An invoice that still requires deal info has no deal yet
			if s.isNotFound(err) {
				deal = nil
				return nil
			}
			return fmt.Errorf("failed to get deal for invoice %s: %w", invoiceID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.invoices.ListInvoiceEvents(gctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to list events for invoice %s: %w", invoiceID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &InvoiceDetailView{
		Invoice:       invoice.Invoice,
		ApprovalTasks: []entity.ApprovalTask{},
		Timeline:      approval.BuildTimeline(events),
	}
	if deal != nil {
		view.Deal = &deal.Deal
		if deal.ApprovalTasks != nil {
			view.ApprovalTasks = deal.ApprovalTasks
		}
	} else if invoice.Invoice.Deal != nil {
		view.Deal = invoice.Invoice.Deal
	}
	view.Levels = approval.AggregateLevels(view.ApprovalTasks)
	view.DealActions = dealActionsFor(view.Deal)

	if selectedTaskID != "" {
		task, ok := approval.FindTask(view.ApprovalTasks, selectedTaskID)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not part of invoice %s", ErrTaskNotFound, selectedTaskID, invoiceID)
		}
		view.SelectedTask = &TaskView{
			ApprovalTask: task,
			Eligibility:  approval.CanAct(task, view.ApprovalTasks, identity),
		}
	}

	return view, nil
}

// UpdateDeal changes the terms of a draft deal
func (s *invoiceServiceImpl) UpdateDeal(ctx context.Context, invoiceID string, req entity.DealUpdateRequest) (*entity.DealResult, error) {
	if req.DiscountRate == nil && req.TransactionFee == nil && req.SourceSystem == nil {
		return nil, fmt.Errorf("%w: no deal fields to update", ErrInvalidInput)
	}
	if req.DiscountRate != nil && (*req.DiscountRate < 0 || *req.DiscountRate >= 1) {
		return nil, fmt.Errorf("%w: discount rate must be within [0, 1)", ErrInvalidInput)
	}
	if req.TransactionFee != nil && *req.TransactionFee < 0 {
		return nil, fmt.Errorf("%w: transaction fee must not be negative", ErrInvalidInput)
	}

	current, err := s.invoices.GetDeal(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal for invoice %s: %w", invoiceID, err)
	}
	if !dealActionsFor(&current.Deal).CanEdit {
		return nil, fmt.Errorf("%w: deal %s is %s", ErrDealNotEditable, current.Deal.ID, current.Deal.Status)
	}

	result, err := s.invoices.UpdateDeal(ctx, invoiceID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update deal for invoice %s: %w", invoiceID, err)
	}
	s.logger.Info("Deal updated", "invoice_id", invoiceID, "deal_id", result.Deal.ID)
	return result, nil
}

// SubmitDeal submits a draft deal into approval
func (s *invoiceServiceImpl) SubmitDeal(ctx context.Context, invoiceID string) (*entity.DealResult, error) {
	current, err := s.invoices.GetDeal(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal for invoice %s: %w", invoiceID, err)
	}
	if !dealActionsFor(&current.Deal).CanSubmit {
		return nil, fmt.Errorf("%w: deal %s is %s", ErrDealNotSubmittable, current.Deal.ID, current.Deal.Status)
	}

	result, err := s.invoices.SubmitDeal(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit deal for invoice %s: %w", invoiceID, err)
	}

	workflowCreated := result.WorkflowCreated != nil && *result.WorkflowCreated
	s.logger.Info("Deal submitted",
		"invoice_id", invoiceID,
		"deal_id", result.Deal.ID,
		"workflow_created", workflowCreated,
		"approval_tasks", len(result.ApprovalTasks))
	return result, nil
}
