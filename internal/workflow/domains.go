package workflow

import (
	"context"

	"github.com/shasank123/Fresh-Prints-OS/internal/api"
	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

// ScoutOps adapts the backend's scout endpoints to the generic
// controller.
type ScoutOps struct {
	Client *api.Client
}

func (o ScoutOps) Pending(ctx context.Context, id models.JobID) (*models.LeadDraft, bool, error) {
	draft, err := o.Client.PendingLead(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return draft, draft.Status == models.StatusWaitingForApproval, nil
}

func (o ScoutOps) Approve(ctx context.Context, id models.JobID) error {
	return o.Client.ApproveLead(ctx, id)
}

func (o ScoutOps) Reject(ctx context.Context, id models.JobID, feedback string) error {
	return o.Client.RejectLead(ctx, id, feedback)
}

// DesignOps adapts the designer endpoints.
type DesignOps struct {
	Client *api.Client
}

func (o DesignOps) Pending(ctx context.Context, id models.JobID) (*models.DesignReview, bool, error) {
	review, err := o.Client.PendingDesign(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return review, review.Status == models.StatusWaitingForApproval, nil
}

func (o DesignOps) Approve(ctx context.Context, id models.JobID) error {
	return o.Client.ApproveDesign(ctx, id)
}

func (o DesignOps) Reject(ctx context.Context, id models.JobID, feedback string) error {
	return o.Client.RejectDesign(ctx, id, feedback)
}

// LogisticsOps adapts the logistics endpoints.
type LogisticsOps struct {
	Client *api.Client
}

func (o LogisticsOps) Pending(ctx context.Context, id models.JobID) (*models.LogisticsPlan, bool, error) {
	plan, err := o.Client.PendingPlan(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return plan, plan.Status == models.StatusWaitingForApproval, nil
}

func (o LogisticsOps) Approve(ctx context.Context, id models.JobID) error {
	return o.Client.ApproveLogistics(ctx, id)
}

func (o LogisticsOps) Reject(ctx context.Context, id models.JobID, feedback string) error {
	return o.Client.RejectLogistics(ctx, id, feedback)
}
