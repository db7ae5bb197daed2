package models

import (
	"errors"
	"strings"
	"time"
)

type Domain string

const (
	DomainScout     Domain = "scout"
	DomainDesigner  Domain = "designer"
	DomainLogistics Domain = "logistics"
)

// JobID identifies one invocation of a remote agent workflow. Ids are
// minted client-side from wall-clock milliseconds, so they only need to
// be unique among jobs launched sequentially from the same session.
type JobID int64

func NewJobID(now time.Time) JobID {
	return JobID(now.UnixMilli())
}

func (id JobID) Int64() int64 {
	return int64(id)
}

// Job is one client-initiated run of a remote workflow. It lives only in
// the viewing session; launching a new job discards the previous one.
type Job struct {
	ID        JobID
	Domain    Domain
	StartedAt time.Time
}

// ScoutParams, DesignParams and LogisticsParams carry the user-supplied
// launch inputs per domain.
type ScoutParams struct {
	Title string `json:"title"`
}

type DesignParams struct {
	Vibe string `json:"vibe"`
}

type LogisticsParams struct {
	CustomerZip string `json:"customer_zip"`
	OrderQty    int    `json:"order_qty"`
	SKU         string `json:"sku"`
}

func (p ScoutParams) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("lead/event title is required")
	}
	return nil
}

func (p DesignParams) Validate() error {
	if strings.TrimSpace(p.Vibe) == "" {
		return errors.New("design vibe/style is required")
	}
	return nil
}

func (p LogisticsParams) Validate() error {
	if strings.TrimSpace(p.CustomerZip) == "" || strings.TrimSpace(p.SKU) == "" {
		return errors.New("customer zip and SKU are required")
	}
	if p.OrderQty <= 0 {
		return errors.New("order quantity must be positive")
	}
	return nil
}
