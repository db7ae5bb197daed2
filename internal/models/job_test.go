package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewJobID(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.UnixMilli(), NewJobID(now).Int64())
}

func TestParamsValidate(t *testing.T) {
	assert.Error(t, ScoutParams{}.Validate())
	assert.Error(t, ScoutParams{Title: "  "}.Validate())
	assert.NoError(t, ScoutParams{Title: "MIT Robotics win"}.Validate())

	assert.Error(t, DesignParams{}.Validate())
	assert.NoError(t, DesignParams{Vibe: "retro 80s"}.Validate())

	valid := LogisticsParams{CustomerZip: "10001", OrderQty: 100, SKU: "CREW-NECK-WHITE-M"}
	assert.NoError(t, valid.Validate())

	for _, p := range []LogisticsParams{
		{OrderQty: 100, SKU: "X"},
		{CustomerZip: "10001", OrderQty: 100},
		{CustomerZip: "10001", SKU: "X"},
		{CustomerZip: "10001", OrderQty: -5, SKU: "X"},
	} {
		assert.Error(t, p.Validate())
	}
}
