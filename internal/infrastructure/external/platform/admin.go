package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ListApprovalRules retrieves the approval routing rules
func (c *Client) ListApprovalRules(ctx context.Context) ([]entity.ApprovalRule, error) {
	return getList[entity.ApprovalRule](ctx, c, "/admin/approval-config/rules", nil)
}

// CreateApprovalRule creates a new approval routing rule
func (c *Client) CreateApprovalRule(ctx context.Context, rule *entity.ApprovalRule) (*entity.ApprovalRule, error) {
	return sendItem[entity.ApprovalRule](ctx, c, http.MethodPost, "/admin/approval-config/rules", rule)
}

// DeactivateApprovalRule deactivates a rule by name
func (c *Client) DeactivateApprovalRule(ctx context.Context, ruleName string) error {
	_, err := c.do(ctx, http.MethodDelete, c.urls.V1, "/admin/approval-config/rules/"+url.PathEscape(ruleName), nil, nil)
	return err
}

// ListPricingRules retrieves the pricing rules
func (c *Client) ListPricingRules(ctx context.Context) ([]entity.PricingRule, error) {
	return getList[entity.PricingRule](ctx, c, "/admin/pricing-rules", nil)
}

// CreatePricingRule creates a new pricing rule
func (c *Client) CreatePricingRule(ctx context.Context, rule *entity.PricingRule) (*entity.PricingRule, error) {
	return sendItem[entity.PricingRule](ctx, c, http.MethodPost, "/admin/pricing-rules", rule)
}

// DisablePricingRule disables a pricing rule
func (c *Client) DisablePricingRule(ctx context.Context, ruleID string) error {
	_, err := c.do(ctx, http.MethodPost, c.urls.V1, "/admin/pricing-rules/"+url.PathEscape(ruleID)+"/disable", nil, nil)
	return err
}

// ListPermissions retrieves the system permissions
func (c *Client) ListPermissions(ctx context.Context) ([]entity.SystemPermission, error) {
	return getList[entity.SystemPermission](ctx, c, "/admin/system/permissions", nil)
}

// ListRoles retrieves the system roles
func (c *Client) ListRoles(ctx context.Context) ([]entity.SystemRole, error) {
	return getList[entity.SystemRole](ctx, c, "/admin/system/roles", nil)
}

// CreateRole creates a new system role
func (c *Client) CreateRole(ctx context.Context, role *entity.SystemRole) (*entity.SystemRole, error) {
	return sendItem[entity.SystemRole](ctx, c, http.MethodPost, "/admin/system/roles", role)
}

// UpdateRole replaces a system role
func (c *Client) UpdateRole(ctx context.Context, roleID string, role *entity.SystemRole) (*entity.SystemRole, error) {
	return sendItem[entity.SystemRole](ctx, c, http.MethodPut, "/admin/system/roles/"+url.PathEscape(roleID), role)
}

// GetWorkflow retrieves a workflow document
func (c *Client) GetWorkflow(ctx context.Context, workflowID string) (json.RawMessage, error) {
	return getRaw(ctx, c, "/workflows/"+url.PathEscape(workflowID), nil)
}

// ListAudit retrieves a page of the platform's audit log
func (c *Client) ListAudit(ctx context.Context, q port.AuditQuery) (json.RawMessage, error) {
	query := url.Values{}
	if q.EntityType != "" {
		query.Set("entityType", q.EntityType)
	}
	if q.EntityID != "" {
		query.Set("entityId", q.EntityID)
	}
	page, pageSize := q.Page, q.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	return getRaw(ctx, c, "/audit", query)
}
