package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/application/service"
	"github.com/garyjia/finance-console/internal/auth"
	"github.com/garyjia/finance-console/internal/domain/approval"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// TokenIssuer mints development tokens
type TokenIssuer interface {
	RequestDevToken(ctx context.Context, userType string) (*entity.DevToken, error)
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	services  Services
	adminRole string
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, adminRole string, logger *zap.Logger) *Handlers {
	return &Handlers{
		services:  services,
		adminRole: adminRole,
		logger:    logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// MeResponse describes the current user
type MeResponse struct {
	Subject string   `json:"sub"`
	Roles   []string `json:"roles"`
	IsAdmin bool     `json:"isAdmin"`
}

// TaskActionBody is the body of POST /api/tasks/:id/actions
type TaskActionBody struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// ListActionsRequest represents query parameters for listing journaled actions
type ListActionsRequest struct {
	Limit int    `form:"limit"`
	Scope string `form:"scope"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// RequestDevToken handles GET /api/auth/token/:userType
func (h *Handlers) RequestDevToken(c *gin.Context) {
	userType := c.Param("userType")
	if !isKnownUserType(userType) {
		h.respondBadRequest(c, fmt.Sprintf("unknown user type %q", userType))
		return
	}

	token, err := h.services.Tokens.RequestDevToken(c.Request.Context(), userType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, token)
}

// Me handles GET /api/me
func (h *Handlers) Me(c *gin.Context) {
	identity := auth.IdentityFromContext(c.Request.Context())
	ok(c, http.StatusOK, MeResponse{
		Subject: identity.SubjectID,
		Roles:   approval.NormalizeRoles(identity.Roles).Slice(),
		IsAdmin: auth.HasRole(identity, h.adminRole),
	})
}

// ListTasks handles GET /api/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	status, err := service.ParseTaskStatus(c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	view, err := h.services.Tasks.ListTasks(ctx, auth.IdentityFromContext(ctx), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// PerformTaskAction handles POST /api/tasks/:id/actions
func (h *Handlers) PerformTaskAction(c *gin.Context) {
	var body TaskActionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	result, err := h.services.Tasks.PerformAction(ctx, auth.IdentityFromContext(ctx), c.Param("id"), entity.TaskAction(body.Action), body.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}

// ListActions handles GET /api/actions. Admins may pass scope=all.
func (h *Handlers) ListActions(c *gin.Context) {
	var req ListActionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}

	ctx := c.Request.Context()
	identity := auth.IdentityFromContext(ctx)
	actor := identity.SubjectID
	if req.Scope == "all" && auth.HasRole(identity, h.adminRole) {
		actor = ""
	}

	records, err := h.services.Tasks.ListActions(ctx, actor, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, records)
}

// Dashboard handles GET /api/dashboard
func (h *Handlers) Dashboard(c *gin.Context) {
	overview, err := h.services.Dashboard.Overview(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, overview)
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.services.Invoices.ListInvoices(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, invoices)
}

// CreateInvoice handles POST /api/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var req entity.InvoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.services.Invoices.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, result)
}

// GetInvoiceDetail handles GET /api/invoices/:id
func (h *Handlers) GetInvoiceDetail(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.services.Invoices.GetInvoiceDetail(ctx, auth.IdentityFromContext(ctx), c.Param("id"), c.Query("taskId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// ExportInvoice handles GET /api/invoices/:id/export
func (h *Handlers) ExportInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	invoiceID := c.Param("id")

	var buf bytes.Buffer
	if err := h.services.Export.ExportInvoice(ctx, auth.IdentityFromContext(ctx), invoiceID, &buf); err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.xlsx"`, invoiceID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// UpdateDeal handles PATCH /api/invoices/:id/deal
func (h *Handlers) UpdateDeal(c *gin.Context) {
	var req entity.DealUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	result, err := h.services.Invoices.UpdateDeal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}

// SubmitDeal handles POST /api/invoices/:id/deal/submit
func (h *Handlers) SubmitDeal(c *gin.Context) {
	result, err := h.services.Invoices.SubmitDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}

// GetWorkflow handles GET /api/workflows/:id
func (h *Handlers) GetWorkflow(c *gin.Context) {
	workflow, err := h.services.Admin.GetWorkflow(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, workflow)
}

// ListAudit handles GET /api/audit
func (h *Handlers) ListAudit(c *gin.Context) {
	var query port.AuditQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}

	page, err := h.services.Admin.ListAudit(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func isKnownUserType(userType string) bool {
	for _, t := range entity.DevTokenUserTypes {
		if t == userType {
			return true
		}
	}
	return false
}
