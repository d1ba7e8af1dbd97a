package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/garyjia/finance-console/internal/domain/approval"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// Workbook sheet names
const (
	sheetSummary  = "Summary"
	sheetLevels   = "Levels"
	sheetTasks    = "Tasks"
	sheetTimeline = "Timeline"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportConfig configures the xlsx export
type ExportConfig struct {
	CompanyName string
	Locale      string
}

// ExportService writes the invoice detail view to an xlsx workbook
type ExportService interface {
	ExportInvoice(ctx context.Context, identity entity.Identity, invoiceID string, w io.Writer) error
}

type exportServiceImpl struct {
	invoices InvoiceService
	cfg      ExportConfig
	printer  *message.Printer
	logger   Logger
}

// NewExportService creates a new ExportService
func NewExportService(invoices InvoiceService, cfg ExportConfig, logger Logger) ExportService {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &exportServiceImpl{
		invoices: invoices,
		cfg:      cfg,
		printer:  message.NewPrinter(tag),
		logger:   logger,
	}
}

// ExportInvoice renders the invoice's summary, levels, tasks and timeline sheets
func (s *exportServiceImpl) ExportInvoice(ctx context.Context, identity entity.Identity, invoiceID string, w io.Writer) error {
	view, err := s.invoices.GetInvoiceDetail(ctx, identity, invoiceID, "")
	if err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{sheetLevels, sheetTasks, sheetTimeline} {
		if _, err := file.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := s.writeSummary(file, view); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := s.writeLevels(file, view.Levels); err != nil {
		return fmt.Errorf("failed to write levels: %w", err)
	}
	if err := s.writeTasks(file, view.ApprovalTasks); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := s.writeTimeline(file, view.Timeline); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Invoice exported",
		"invoice_id", invoiceID,
		"levels", len(view.Levels),
		"timeline_items", len(view.Timeline))
	return nil
}

func (s *exportServiceImpl) writeSummary(file *excelize.File, view *InvoiceDetailView) error {
	inv := view.Invoice
	rows := [][]interface{}{
		{s.cfg.CompanyName},
		{"Invoice", inv.InvoiceNumber},
		{"Invoice ID", inv.ID},
		{"Status", inv.Status},
		{"Seller", inv.SellerRef},
		{"Debtor", inv.DebtorRef},
		{"Amount", s.formatAmount(inv.InvoiceAmount, inv.Currency)},
		{"Issue Date", inv.IssueDate},
		{"Due Date", inv.DueDate},
		{"Tenor (days)", inv.TenorDays},
	}
	if deal := view.Deal; deal != nil {
		rows = append(rows,
			[]interface{}{},
			[]interface{}{"Deal", deal.ID},
			[]interface{}{"Deal Status", deal.Status},
			[]interface{}{"Discount Rate", s.printer.Sprintf("%.3f%%", deal.DiscountRate*100)},
			[]interface{}{"Discount Fee", s.formatAmount(deal.DiscountFee, inv.Currency)},
			[]interface{}{"Cash Price", s.formatAmount(deal.CashPrice, inv.Currency)},
			[]interface{}{"Transaction Fee", s.formatAmount(deal.TransactionFee, inv.Currency)},
		)
	}
	return writeRows(file, sheetSummary, rows)
}

func (s *exportServiceImpl) writeLevels(file *excelize.File, levels []approval.LevelSummary) error {
	rows := [][]interface{}{
		{"Level", "Status", "Approved", "Rejected", "Actionable", "Blocked", "Total", "Candidate Roles", "Actioned By"},
	}
	for _, level := range levels {
		rows = append(rows, []interface{}{
			level.Level,
			string(level.Status),
			level.ApprovedCount,
			level.RejectedCount,
			level.ActionableCount,
			level.BlockedCount,
			level.Total,
			strings.Join(level.CandidateRoles, ", "),
			strings.Join(level.ActionedBy, ", "),
		})
	}
	return writeRows(file, sheetLevels, rows)
}

func (s *exportServiceImpl) writeTasks(file *excelize.File, tasks []entity.ApprovalTask) error {
	rows := [][]interface{}{
		{"Task ID", "Level", "Status", "Candidate Roles", "Actioned By", "Actioned At", "Reason"},
	}
	for _, task := range tasks {
		actionedAt := ""
		if task.ActionedAt != nil {
			actionedAt = formatExportTime(*task.ActionedAt)
		}
		reason := ""
		if task.Reason != nil {
			reason = *task.Reason
		}
		rows = append(rows, []interface{}{
			task.TaskID,
			task.LevelNumber,
			task.Status.String(),
			strings.Join(task.CandidateRoles, ", "),
			task.ActionedByID(),
			actionedAt,
			reason,
		})
	}
	return writeRows(file, sheetTasks, rows)
}

func (s *exportServiceImpl) writeTimeline(file *excelize.File, items []approval.TimelineItem) error {
	rows := [][]interface{}{
		{"Time", "Event", "Actor", "Reason"},
	}
	for _, item := range items {
		reason := ""
		if item.Reason != nil {
			reason = *item.Reason
		}
		rows = append(rows, []interface{}{formatExportTime(item.CreatedAt), item.Title, item.Actor, reason})
	}
	return writeRows(file, sheetTimeline, rows)
}

// formatAmount renders an amount with its currency symbol and locale digit grouping.
// Unknown currency codes are appended as-is.
func (s *exportServiceImpl) formatAmount(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return s.printer.Sprintf("%.2f %s", amount, code)
	}
	return s.printer.Sprint(currency.Symbol(unit)) + " " + s.printer.Sprintf("%.2f", amount)
}

func writeRows(file *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

func formatExportTime(t time.Time) string {
	return t.UTC().Format(exportTimeLayout)
}
