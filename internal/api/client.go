// Package api is the HTTP/JSON client for the Fresh Prints OS agent
// backend. The backend is opaque: jobs run remotely and everything the
// client learns comes back through these endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// RunScout starts a scout job for the given lead title.
func (c *Client) RunScout(ctx context.Context, id models.JobID, title string) error {
	body := map[string]any{"lead_id": id.Int64(), "title": title}
	return c.postJSON(ctx, "/run-scout", body, nil)
}

// RunDesigner starts a design job for the given vibe.
func (c *Client) RunDesigner(ctx context.Context, id models.JobID, vibe string) error {
	body := map[string]any{"lead_id": id.Int64(), "vibe": vibe}
	return c.postJSON(ctx, "/run-designer", body, nil)
}

// RunLogistics starts a logistics routing job.
func (c *Client) RunLogistics(ctx context.Context, id models.JobID, p models.LogisticsParams) error {
	body := map[string]any{
		"lead_id":      id.Int64(),
		"customer_zip": p.CustomerZip,
		"order_qty":    p.OrderQty,
		"sku":          p.SKU,
	}
	return c.postJSON(ctx, "/run-logistics", body, nil)
}

// Logs fetches the job's execution trace, oldest first.
func (c *Client) Logs(ctx context.Context, id models.JobID) ([]models.LogEntry, error) {
	var out struct {
		Logs []models.LogEntry `json:"logs"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/logs/%d", id.Int64()), &out); err != nil {
		return nil, err
	}
	return out.Logs, nil
}

// PendingLead fetches the scout job's pending draft, if any.
func (c *Client) PendingLead(ctx context.Context, id models.JobID) (*models.LeadDraft, error) {
	var out models.LeadDraft
	if err := c.getJSON(ctx, fmt.Sprintf("/lead-pending-draft/%d", id.Int64()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingDesign fetches the design job's pending review, if any.
func (c *Client) PendingDesign(ctx context.Context, id models.JobID) (*models.DesignReview, error) {
	var out models.DesignReview
	if err := c.getJSON(ctx, fmt.Sprintf("/design-pending-review/%d", id.Int64()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingPlan fetches the logistics job's pending plan, if any.
func (c *Client) PendingPlan(ctx context.Context, id models.JobID) (*models.LogisticsPlan, error) {
	var out models.LogisticsPlan
	if err := c.getJSON(ctx, fmt.Sprintf("/logistics-pending-plan/%d", id.Int64()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApproveLead(ctx context.Context, id models.JobID) error {
	return c.postJSON(ctx, fmt.Sprintf("/approve-lead/%d", id.Int64()), nil, nil)
}

func (c *Client) ApproveDesign(ctx context.Context, id models.JobID) error {
	return c.postJSON(ctx, fmt.Sprintf("/approve-design/%d", id.Int64()), nil, nil)
}

func (c *Client) ApproveLogistics(ctx context.Context, id models.JobID) error {
	return c.postJSON(ctx, fmt.Sprintf("/approve-logistics/%d", id.Int64()), nil, nil)
}

func (c *Client) RejectLead(ctx context.Context, id models.JobID, feedback string) error {
	return c.postJSON(ctx, fmt.Sprintf("/reject-lead/%d", id.Int64()), map[string]string{"feedback": feedback}, nil)
}

func (c *Client) RejectDesign(ctx context.Context, id models.JobID, feedback string) error {
	return c.postJSON(ctx, fmt.Sprintf("/reject-design/%d", id.Int64()), map[string]string{"feedback": feedback}, nil)
}

func (c *Client) RejectLogistics(ctx context.Context, id models.JobID, feedback string) error {
	return c.postJSON(ctx, fmt.Sprintf("/reject-logistics/%d", id.Int64()), map[string]string{"feedback": feedback}, nil)
}

// SendToCustomer requests the stage-2 external sign-off and returns the
// minted approval ticket.
func (c *Client) SendToCustomer(ctx context.Context, id models.JobID, email, name string) (*models.ApprovalTicket, error) {
	body := map[string]string{"customer_email": email, "customer_name": name}
	var out models.ApprovalTicket
	if err := c.postJSON(ctx, fmt.Sprintf("/send-to-customer/%d", id.Int64()), body, &out); err != nil {
		return nil, err
	}
	out.CustomerEmail = email
	out.CustomerName = name
	return &out, nil
}

// Rates fetches carrier quotes for a shipment.
func (c *Client) Rates(ctx context.Context, originZip, destZip string, weightLbs float64) (*models.RatesData, error) {
	body := map[string]any{
		"origin_zip": originZip,
		"dest_zip":   destZip,
		"weight_lbs": weightLbs,
	}
	var out models.RatesData
	if err := c.postJSON(ctx, "/logistics-rates", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Carbon fetches the emissions estimate for a shipment.
func (c *Client) Carbon(ctx context.Context, originZip, destZip string, weightLbs float64, mode string) (*models.CarbonEstimate, error) {
	body := map[string]any{
		"origin_zip":    originZip,
		"dest_zip":      destZip,
		"weight_lbs":    weightLbs,
		"shipping_mode": mode,
	}
	var out models.CarbonEstimate
	if err := c.postJSON(ctx, "/logistics-carbon", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RouteData fetches the warehouse/route geometry for a destination zip.
func (c *Client) RouteData(ctx context.Context, customerZip string) (*models.RouteData, error) {
	body := map[string]string{"customer_zip": customerZip}
	var out models.RouteData
	if err := c.postJSON(ctx, "/logistics-route-data", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DemandForecast fetches the per-SKU demand forecast.
func (c *Client) DemandForecast(ctx context.Context, sku string) (*models.Forecast, error) {
	var out models.Forecast
	if err := c.getJSON(ctx, "/demand-forecast/"+sku, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned %s for %s", resp.Status, req.URL.Path)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
