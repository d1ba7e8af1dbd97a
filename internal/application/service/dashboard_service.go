package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// DashboardOverview counts the items on the console's home page that need attention
type DashboardOverview struct {
	PendingTasks          int `json:"pendingTasks"`
	DealsPendingApproval  int `json:"dealsPendingApproval"`
	InvoicesRequiringInfo int `json:"invoicesRequiringInfo"`
}

// DashboardService summarises the work waiting for the current user
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type dashboardServiceImpl struct {
	tasks    port.TaskAPI
	invoices port.InvoiceAPI
	logger   Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(tasks port.TaskAPI, invoices port.InvoiceAPI, logger Logger) DashboardService {
	return &dashboardServiceImpl{
		tasks:    tasks,
		invoices: invoices,
		logger:   logger,
	}
}

// Overview counts actionable tasks, submitted deals and invoices still missing deal info
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*DashboardOverview, error) {
	var (
		tasks    []entity.ApprovalTask
		invoices []entity.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListTasks(gctx, entity.TaskStatusPendingActionable)
		if err != nil {
			return fmt.Errorf("failed to list actionable tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		invoices, err = s.invoices.ListInvoices(gctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &DashboardOverview{PendingTasks: len(tasks)}
	for _, invoice := range invoices {
		if invoice.Deal != nil && invoice.Deal.Status == entity.DealStatusSubmitted {
			overview.DealsPendingApproval++
		}
		if invoice.Status == entity.InvoiceStatusRequiresDealInfo {
			overview.InvoicesRequiringInfo++
		}
	}
	return overview, nil
}
