package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestRunScout(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = decodeBody(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.RunScout(context.Background(), 1770000000000, "MIT Robotics win nationals")
	require.NoError(t, err)
	assert.Equal(t, "/run-scout", gotPath)
	assert.Equal(t, float64(1770000000000), gotBody["lead_id"])
	assert.Equal(t, "MIT Robotics win nationals", gotBody["title"])
}

func TestLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logs/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"logs": []map[string]any{
				{"id": 1, "agent_type": "THOUGHT", "log_message": "Scanning news", "timestamp": "10:00:01"},
				{"id": 2, "agent_type": "TOOL", "log_message": "web_search(...)", "timestamp": "10:00:02"},
			},
		})
	}))
	defer srv.Close()

	logs, err := New(srv.URL).Logs(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), logs[1].ID)
	assert.Equal(t, models.AgentTypeTool, logs[1].AgentType)
}

func TestPendingLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lead-pending-draft/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status":        "waiting_for_approval",
			"pending_draft": "Hi coach, congrats on the win...",
			"strategy":      "celebratory angle",
			"sentiment":     "POSITIVE",
			"lead_score":    82,
		})
	}))
	defer srv.Close()

	draft, err := New(srv.URL).PendingLead(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitingForApproval, draft.Status)
	assert.Equal(t, 82, draft.LeadScore)
	assert.Equal(t, "POSITIVE", draft.Sentiment)
}

func TestRejectLeadSendsFeedback(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reject-lead/42", r.URL.Path)
		gotBody = decodeBody(t, r)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).RejectLead(context.Background(), 42, "make it shorter"))
	assert.Equal(t, "make it shorter", gotBody["feedback"])
}

func TestSendToCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-to-customer/42", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "coach@mit.edu", body["customer_email"])
		json.NewEncoder(w).Encode(map[string]any{
			"token":        "tok-9",
			"approval_url": "http://backend/approve-design/tok-9",
			"reject_url":   "http://backend/reject-design/tok-9",
		})
	}))
	defer srv.Close()

	ticket, err := New(srv.URL).SendToCustomer(context.Background(), 42, "coach@mit.edu", "Coach Smith")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", ticket.Token)
	// The backend echoes only the ticket; the client fills in who it
	// was addressed to.
	assert.Equal(t, "coach@mit.edu", ticket.CustomerEmail)
	assert.Equal(t, "Coach Smith", ticket.CustomerName)
}

func TestRatesDecodesMixedTransitDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logistics-rates", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "10001", body["origin_zip"])
		assert.Equal(t, float64(50), body["weight_lbs"])
		json.NewEncoder(w).Encode(map[string]any{
			"source": "simulated",
			"rates": []map[string]any{
				{"carrier": "UPS", "service": "Ground", "price": 12.99, "days": 3},
				{"carrier": "FedEx", "service": "2Day", "price": 21.24, "days": "1-2"},
			},
		})
	}))
	defer srv.Close()

	rates, err := New(srv.URL).Rates(context.Background(), "10001", "94043", 50)
	require.NoError(t, err)
	require.Len(t, rates.Rates, 2)
	assert.Equal(t, 3, rates.Rates[0].Days.NumOr(99))
	assert.Equal(t, "1-2", rates.Rates[1].Days.String())
}

func TestDemandForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demand-forecast/HOODIE-BLACK-L", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"total_predicted_orders": 310,
			"avg_daily":              10.3,
			"peak_day":               "2026-04-01",
			"peak_orders":            25,
			"recommendation":         "Stock up before April",
			"daily_forecast": []map[string]any{
				{"date": "2026-03-30", "orders": 12},
			},
		})
	}))
	defer srv.Close()

	f, err := New(srv.URL).DemandForecast(context.Background(), "HOODIE-BLACK-L")
	require.NoError(t, err)
	assert.Equal(t, 310, f.TotalPredictedOrders)
	require.Len(t, f.DailyForecast, 1)
	assert.Equal(t, 12, f.DailyForecast[0].Orders)
}

func TestNon2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.ApproveLead(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	_, err = c.Logs(context.Background(), 42)
	assert.Error(t, err)
}

func TestUnreachableBackend(t *testing.T) {
	c := New("http://127.0.0.1:1")
	err := c.RunScout(context.Background(), 42, "title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unreachable")
}
