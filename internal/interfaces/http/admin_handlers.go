package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ListApprovalRules handles GET /api/admin/approval-rules
func (h *Handlers) ListApprovalRules(c *gin.Context) {
	rules, err := h.services.Admin.ListApprovalRules(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, rules)
}

// CreateApprovalRule handles POST /api/admin/approval-rules
func (h *Handlers) CreateApprovalRule(c *gin.Context) {
	var rule entity.ApprovalRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.services.Admin.CreateApprovalRule(c.Request.Context(), &rule)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

// DeactivateApprovalRule handles DELETE /api/admin/approval-rules/:name
func (h *Handlers) DeactivateApprovalRule(c *gin.Context) {
	if err := h.services.Admin.DeactivateApprovalRule(c.Request.Context(), c.Param("name")); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ruleName": c.Param("name"), "active": false})
}

// ListPricingRules handles GET /api/admin/pricing-rules
func (h *Handlers) ListPricingRules(c *gin.Context) {
	rules, err := h.services.Admin.ListPricingRules(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, rules)
}

// CreatePricingRule handles POST /api/admin/pricing-rules
func (h *Handlers) CreatePricingRule(c *gin.Context) {
	var rule entity.PricingRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.services.Admin.CreatePricingRule(c.Request.Context(), &rule)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

// DisablePricingRule handles POST /api/admin/pricing-rules/:id/disable
func (h *Handlers) DisablePricingRule(c *gin.Context) {
	if err := h.services.Admin.DisablePricingRule(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": c.Param("id"), "enabled": false})
}

// ListPermissions handles GET /api/admin/permissions
func (h *Handlers) ListPermissions(c *gin.Context) {
	permissions, err := h.services.Admin.ListPermissions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, permissions)
}

// ListRoles handles GET /api/admin/roles
func (h *Handlers) ListRoles(c *gin.Context) {
	roles, err := h.services.Admin.ListRoles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, roles)
}

// CreateRole handles POST /api/admin/roles
func (h *Handlers) CreateRole(c *gin.Context) {
	var role entity.SystemRole
	if err := c.ShouldBindJSON(&role); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.services.Admin.CreateRole(c.Request.Context(), &role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

// UpdateRole handles PUT /api/admin/roles/:id
func (h *Handlers) UpdateRole(c *gin.Context) {
	var role entity.SystemRole
	if err := c.ShouldBindJSON(&role); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.services.Admin.UpdateRole(c.Request.Context(), c.Param("id"), &role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}
