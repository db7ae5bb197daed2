package models

import "time"

// StatusWaitingForApproval is the pending-endpoint status that marks an
// artifact as awaiting human sign-off. Any other status means there is
// no pending action.
const StatusWaitingForApproval = "waiting_for_approval"

// LeadDraft is the scout workflow's pending artifact: a drafted outreach
// email plus the agent's reasoning and scoring.
type LeadDraft struct {
	Status       string `json:"status"`
	PendingDraft string `json:"pending_draft"`
	Strategy     string `json:"strategy"`
	Sentiment    string `json:"sentiment"`
	LeadScore    int    `json:"lead_score"`
}

// DesignReview is the designer workflow's pending artifact.
type DesignReview struct {
	Status         string   `json:"status"`
	ImageURL       string   `json:"image_url"`
	CostReport     string   `json:"cost_report"`
	ColorPalette   []string `json:"color_palette"`
	PrintTechnique string   `json:"print_technique"`
	Profitability  string   `json:"profitability"`
}

// LogisticsPlan is the logistics workflow's pending artifact.
type LogisticsPlan struct {
	Status      string  `json:"status"`
	PlanDetails string  `json:"plan_details"`
	TotalCost   float64 `json:"total_cost"`
	ETADays     int     `json:"eta_days"`
	CarbonKg    float64 `json:"carbon_kg"`
}

// ApprovalTicket is the stage-2 approval request returned by
// send-to-customer: an opaque token plus two one-shot URLs addressed to
// the external reviewer.
type ApprovalTicket struct {
	Token         string `json:"token"`
	ApprovalURL   string `json:"approval_url"`
	RejectURL     string `json:"reject_url"`
	CustomerEmail string `json:"-"`
	CustomerName  string `json:"-"`
}

// DesignHistoryEntry is one gallery item. The image URL is the
// uniqueness key; entries are appended and never removed, including
// across job relaunches.
type DesignHistoryEntry struct {
	URL       string
	Style     string
	Timestamp time.Time
}
