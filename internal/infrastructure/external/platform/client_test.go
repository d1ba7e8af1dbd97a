package platform

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/auth"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/api/v1", Timeout: 5 * time.Second}, zap.NewNop())
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want BaseURLs
	}{
		{
			name: "host only",
			raw:  "http://localhost:8000",
			want: BaseURLs{Root: "http://localhost:8000", API: "http://localhost:8000/api", V1: "http://localhost:8000/api/v1"},
		},
		{
			name: "api root",
			raw:  "http://localhost:8000/api",
			want: BaseURLs{Root: "http://localhost:8000", API: "http://localhost:8000/api", V1: "http://localhost:8000/api/v1"},
		},
		{
			name: "v1 root with trailing slash",
			raw:  "http://localhost:8000/api/v1/",
			want: BaseURLs{Root: "http://localhost:8000", API: "http://localhost:8000/api", V1: "http://localhost:8000/api/v1"},
		},
		{
			name: "path prefix is preserved",
			raw:  " https://gw.example.com/finance/api ",
			want: BaseURLs{Root: "https://gw.example.com/finance", API: "https://gw.example.com/finance/api", V1: "https://gw.example.com/finance/api/v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.raw))
		})
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "bare array", body: `[{"taskId":"t1"},{"taskId":"t2"}]`, want: 2},
		{name: "envelope", body: `{"success":true,"data":[{"taskId":"t1"}]}`, want: 1},
		{name: "envelope with null data", body: `{"success":true,"data":null}`, want: 0},
		{name: "empty body", body: ``, want: 0},
		{name: "malformed", body: `{"data":[`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeList[entity.ApprovalTask]([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestDecodeItem(t *testing.T) {
	wrapped, err := decodeItem[entity.Deal]([]byte(`{"success":true,"data":{"id":"d1","status":"DRAFT"}}`))
	require.NoError(t, err)
	assert.Equal(t, "d1", wrapped.ID)

	bare, err := decodeItem[entity.Deal]([]byte(`{"id":"d2","status":"SUBMITTED"}`))
	require.NoError(t, err)
	assert.Equal(t, "d2", bare.ID)
	assert.Equal(t, entity.DealStatusSubmitted, bare.Status)
}

func TestClient_ListTasks(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":[{"taskId":"t1","status":"PENDING_ACTIONABLE","levelNumber":1,"candidateRoles":["credit_officer"]}]}`)
	})

	ctx := auth.WithToken(context.Background(), "token-abc")
	tasks, err := client.ListTasks(ctx, entity.TaskStatusPendingActionable)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/approval-tasks", gotPath)
	assert.Equal(t, "status=PENDING_ACTIONABLE", gotQuery)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].TaskID)
	assert.Equal(t, []string{"credit_officer"}, tasks[0].CandidateRoles)
}

func TestClient_ListTasks_NoStatusNoToken(t *testing.T) {
	var gotQuery, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})

	tasks, err := client.ListTasks(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
	assert.Empty(t, gotAuth)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestClient_ListTasks_ZonelessTimestamps(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"taskId":"T1","dealId":"D1","status":"APPROVED","levelNumber":1,"createdAt":"2026-04-01T10:00:00","actionedAt":"2026-04-01T11:00:00","actionedBy":"u1"},
			{"taskId":"T2","dealId":"D1","status":"PENDING_ACTIONABLE","levelNumber":2,"createdAt":""}
		]}`)
	})

	tasks, err := client.ListTasks(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), tasks[0].CreatedAt)
	require.NotNil(t, tasks[0].ActionedAt)
	assert.True(t, tasks[1].CreatedAt.IsZero())
}

func TestClient_ListInvoiceEvents_ZonelessTimestamps(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/inv-1/events", r.URL.Path)
		_, _ = io.WriteString(w, `[{"eventId":"E1","eventType":"INVOICE_SUBMITTED","createdAt":"2026-04-01 09:00:00"}]`)
	})

	events, err := client.ListInvoiceEvents(context.Background(), "inv-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), events[0].CreatedAt)
}

func TestClient_PerformTaskAction(t *testing.T) {
	var got entity.TaskActionRequest
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true,"data":{"pendingTasks":[],"completedTasks":[{"taskId":"t1","status":"APPROVED"}]}}`)
	})

	summary, err := client.PerformTaskAction(context.Background(), "t1", entity.TaskActionRequest{
		Action: entity.TaskActionApprove,
		Reason: "looks fine",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/approval-tasks/t1/actions", gotPath)
	assert.Equal(t, entity.TaskActionApprove, got.Action)
	assert.Equal(t, "looks fine", got.Reason)
	require.Len(t, summary.CompletedTasks, 1)
	assert.Equal(t, entity.TaskStatusApproved, summary.CompletedTasks[0].Status)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message field", status: http.StatusConflict, body: `{"success":false,"message":"Task already actioned"}`, wantMessage: "Task already actioned"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"reason is required"}`, wantMessage: "reason is required"},
		{name: "no body", status: http.StatusBadGateway, body: ``, wantMessage: "Bad Gateway"},
		{name: "non-json body", status: http.StatusNotFound, body: `<html>nope</html>`, wantMessage: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.ListInvoices(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_GetDeal_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/inv-1/deal", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetDeal(context.Background(), "inv-1")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_UpdateDeal_SendsOnlySetFields(t *testing.T) {
	var raw map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = io.WriteString(w, `{"deal":{"id":"d1","invoiceId":"inv-1","status":"DRAFT","discountRate":0.05},"submitted":false}`)
	})

	rate := 0.05
	result, err := client.UpdateDeal(context.Background(), "inv-1", entity.DealUpdateRequest{DiscountRate: &rate})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"discountRate": 0.05}, raw)
	assert.Equal(t, "d1", result.Deal.ID)
	assert.Equal(t, entity.DealStatusDraft, result.Deal.Status)
}

func TestClient_ListAudit_DefaultsPaging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/audit", r.URL.Path)
		assert.Equal(t, "INVOICE", r.URL.Query().Get("entityType"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		_, _ = io.WriteString(w, `{"items":[],"total":0}`)
	})

	raw, err := client.ListAudit(context.Background(), port.AuditQuery{EntityType: "INVOICE"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(raw))
}

func TestClient_RequestDevToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/token/senior", r.URL.Path)
		_, _ = io.WriteString(w, `{"access_token":"jwt","token_type":"bearer","expires_in":3600,"user_info":{"sub":"u-2","roles":["senior_credit"]}}`)
	})

	token, err := client.RequestDevToken(context.Background(), "senior")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token.AccessToken)
	assert.Equal(t, "u-2", token.UserInfo.Sub)

	_, err = client.RequestDevToken(context.Background(), "intern")
	assert.ErrorIs(t, err, ErrUnknownUserType)
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", RateLimit: 0.001, Burst: 1}, zap.NewNop())
	// drain the single burst token
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListInvoices(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
