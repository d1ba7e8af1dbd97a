package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// AdminService manages platform configuration and audit lookups
type AdminService interface {
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

	GetWorkflow(ctx context.Context, workflowID string) (json.RawMessage, error)
	ListAudit(ctx context.Context, query port.AuditQuery) (json.RawMessage, error)
}

type adminServiceImpl struct {
	admin  port.AdminAPI
	logger Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(admin port.AdminAPI, logger Logger) AdminService {
	return &adminServiceImpl{
		admin:  admin,
		logger: logger,
	}
}

func (s *adminServiceImpl) ListApprovalRules(ctx context.Context) ([]entity.ApprovalRule, error) {
	rules, err := s.admin.ListApprovalRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval rules: %w", err)
	}
	return rules, nil
}

// CreateApprovalRule validates level numbering and quorum before creating the rule
func (s *adminServiceImpl) CreateApprovalRule(ctx context.Context, rule *entity.ApprovalRule) (*entity.ApprovalRule, error) {
	if err := validateApprovalRule(rule); err != nil {
		return nil, err
	}

	created, err := s.admin.CreateApprovalRule(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to create approval rule %s: %w", rule.RuleName, err)
	}
	s.logger.Info("Approval rule created", "rule_name", rule.RuleName, "levels", len(rule.Levels))
	return created, nil
}

func (s *adminServiceImpl) DeactivateApprovalRule(ctx context.Context, ruleName string) error {
	if strings.TrimSpace(ruleName) == "" {
		return fmt.Errorf("%w: rule name is required", ErrInvalidInput)
	}
	if err := s.admin.DeactivateApprovalRule(ctx, ruleName); err != nil {
		return fmt.Errorf("failed to deactivate approval rule %s: %w", ruleName, err)
	}
	s.logger.Info("Approval rule deactivated", "rule_name", ruleName)
	return nil
}

func (s *adminServiceImpl) ListPricingRules(ctx context.Context) ([]entity.PricingRule, error) {
	rules, err := s.admin.ListPricingRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	return rules, nil
}

// CreatePricingRule checks the rate band and fee type before creating the rule
func (s *adminServiceImpl) CreatePricingRule(ctx context.Context, rule *entity.PricingRule) (*entity.PricingRule, error) {
	if err := validatePricingRule(rule); err != nil {
		return nil, err
	}

	created, err := s.admin.CreatePricingRule(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing rule %s: %w", rule.Name, err)
	}
	s.logger.Info("Pricing rule created", "name", rule.Name)
	return created, nil
}

func (s *adminServiceImpl) DisablePricingRule(ctx context.Context, ruleID string) error {
	if err := s.admin.DisablePricingRule(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to disable pricing rule %s: %w", ruleID, err)
	}
	s.logger.Info("Pricing rule disabled", "rule_id", ruleID)
	return nil
}

func (s *adminServiceImpl) ListPermissions(ctx context.Context) ([]entity.SystemPermission, error) {
	permissions, err := s.admin.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

func (s *adminServiceImpl) ListRoles(ctx context.Context) ([]entity.SystemRole, error) {
	roles, err := s.admin.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *adminServiceImpl) CreateRole(ctx context.Context, role *entity.SystemRole) (*entity.SystemRole, error) {
	if role == nil || strings.TrimSpace(role.BankRole) == "" {
		return nil, fmt.Errorf("%w: bank role is required", ErrInvalidInput)
	}
	created, err := s.admin.CreateRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create role %s: %w", role.BankRole, err)
	}
	s.logger.Info("Role created", "bank_role", role.BankRole, "permissions", len(role.Permissions))
	return created, nil
}

func (s *adminServiceImpl) UpdateRole(ctx context.Context, roleID string, role *entity.SystemRole) (*entity.SystemRole, error) {
	if role == nil {
		return nil, fmt.Errorf("%w: role is required", ErrInvalidInput)
	}
	updated, err := s.admin.UpdateRole(ctx, roleID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role %s: %w", roleID, err)
	}
	s.logger.Info("Role updated", "role_id", roleID)
	return updated, nil
}

func (s *adminServiceImpl) GetWorkflow(ctx context.Context, workflowID string) (json.RawMessage, error) {
	workflow, err := s.admin.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow %s: %w", workflowID, err)
	}
	return workflow, nil
}

func (s *adminServiceImpl) ListAudit(ctx context.Context, query port.AuditQuery) (json.RawMessage, error) {
	if query.PageSize > 100 {
		query.PageSize = 100
	}
	page, err := s.admin.ListAudit(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	return page, nil
}

// validateApprovalRule requires levels numbered 1..n, each with roles and a reachable quorum
func validateApprovalRule(rule *entity.ApprovalRule) error {
	if rule == nil || strings.TrimSpace(rule.RuleName) == "" {
		return fmt.Errorf("%w: rule name is required", ErrInvalidInput)
	}
	if len(rule.Levels) == 0 {
		return fmt.Errorf("%w: at least one level is required", ErrInvalidInput)
	}
	for i, level := range rule.Levels {
		if level.Level != i+1 {
			return fmt.Errorf("%w: level %d out of sequence, expected %d", ErrInvalidInput, level.Level, i+1)
		}
		if len(level.Roles) == 0 {
			return fmt.Errorf("%w: level %d has no roles", ErrInvalidInput, level.Level)
		}
		if level.RequiredApprovals < 1 {
			return fmt.Errorf("%w: level %d requires at least one approval", ErrInvalidInput, level.Level)
		}
	}
	return nil
}

func validatePricingRule(rule *entity.PricingRule) error {
	if rule == nil || strings.TrimSpace(rule.Name) == "" {
		return fmt.Errorf("%w: pricing rule name is required", ErrInvalidInput)
	}
	rates := rule.Rates
	if rates.MinRateBps > rates.MaxRateBps {
		return fmt.Errorf("%w: min rate exceeds max rate", ErrInvalidInput)
	}
	if rates.DefaultRateBps < rates.MinRateBps || rates.DefaultRateBps > rates.MaxRateBps {
		return fmt.Errorf("%w: default rate outside [%d, %d] bps", ErrInvalidInput, rates.MinRateBps, rates.MaxRateBps)
	}
	switch rule.Fees.FeeType {
	case entity.FeeTypeBps, entity.FeeTypeFlat:
	default:
		return fmt.Errorf("%w: unknown fee type %q", ErrInvalidInput, rule.Fees.FeeType)
	}
	return nil
}
