package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ListTasks retrieves approval tasks, optionally filtered by status
func (c *Client) ListTasks(ctx context.Context, status entity.TaskStatus) ([]entity.ApprovalTask, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	return getList[entity.ApprovalTask](ctx, c, "/approval-tasks", query)
}

// PerformTaskAction approves or rejects a task
func (c *Client) PerformTaskAction(ctx context.Context, taskID string, req entity.TaskActionRequest) (*entity.WorkflowSummary, error) {
	return sendItem[entity.WorkflowSummary](ctx, c, http.MethodPost, "/approval-tasks/"+url.PathEscape(taskID)+"/actions", req)
}
