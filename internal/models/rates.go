package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TransitDays is a carrier transit estimate. The backend returns either
// a bare number or a range string like "1-2", so it unmarshals from both.
type TransitDays struct {
	Text    string
	Value   int
	Numeric bool
}

func (d *TransitDays) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		d.Value = n
		d.Numeric = true
		d.Text = strconv.Itoa(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("transit days: %s", string(data))
	}
	d.Text = s
	return nil
}

func (d TransitDays) MarshalJSON() ([]byte, error) {
	if d.Numeric {
		return json.Marshal(d.Value)
	}
	return json.Marshal(d.Text)
}

// NumOr returns the numeric day count, or fallback for range strings.
func (d TransitDays) NumOr(fallback int) int {
	if d.Numeric {
		return d.Value
	}
	return fallback
}

func (d TransitDays) String() string {
	return d.Text
}

// Rate is one carrier quote.
type Rate struct {
	Carrier     string      `json:"carrier"`
	Service     string      `json:"service"`
	Price       float64     `json:"price"`
	Days        TransitDays `json:"days"`
	CarrierLogo string      `json:"carrier_logo"`
}

// RatesData is the carrier comparison payload. Source tells whether the
// quotes came from a live carrier API or the simulator.
type RatesData struct {
	Source string `json:"source"`
	Rates  []Rate `json:"rates"`
}

// Cheapest returns the lowest-priced rate.
func (r RatesData) Cheapest() (Rate, bool) {
	if len(r.Rates) == 0 {
		return Rate{}, false
	}
	best := r.Rates[0]
	for _, rate := range r.Rates[1:] {
		if rate.Price < best.Price {
			best = rate
		}
	}
	return best, true
}

// Fastest returns the rate with the lowest numeric day count. Rates with
// a range estimate sort last.
func (r RatesData) Fastest() (Rate, bool) {
	if len(r.Rates) == 0 {
		return Rate{}, false
	}
	best := r.Rates[0]
	for _, rate := range r.Rates[1:] {
		if rate.Days.NumOr(99) < best.Days.NumOr(99) {
			best = rate
		}
	}
	return best, true
}

// Savings is the spread between the highest and lowest quote.
func (r RatesData) Savings() float64 {
	if len(r.Rates) == 0 {
		return 0
	}
	min, max := r.Rates[0].Price, r.Rates[0].Price
	for _, rate := range r.Rates[1:] {
		if rate.Price < min {
			min = rate.Price
		}
		if rate.Price > max {
			max = rate.Price
		}
	}
	return max - min
}

// CarbonEstimate is the emissions payload for a shipment.
type CarbonEstimate struct {
	CarbonKg      float64 `json:"carbon_kg"`
	DistanceKm    float64 `json:"distance_km"`
	ShippingMode  string  `json:"shipping_mode"`
	TreesToOffset int     `json:"trees_to_offset"`
	EcoRating     string  `json:"eco_rating"`
}

// RouteData is the route-geometry payload used for the route overview.
type RouteData struct {
	Customer   RoutePoint  `json:"customer"`
	Warehouses []Warehouse `json:"warehouses"`
	Routes     []RouteLeg  `json:"routes"`
}

type RoutePoint struct {
	City string  `json:"city"`
	Zip  string  `json:"zip"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Warehouse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Active bool    `json:"active"`
}

type RouteLeg struct {
	From          string  `json:"from"`
	FromLat       float64 `json:"from_lat"`
	FromLng       float64 `json:"from_lng"`
	ToLat         float64 `json:"to_lat"`
	ToLng         float64 `json:"to_lng"`
	DistanceMiles float64 `json:"distance_miles"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Forecast is the per-SKU demand forecast.
type Forecast struct {
	TotalPredictedOrders int             `json:"total_predicted_orders"`
	AvgDaily             float64         `json:"avg_daily"`
	PeakDay              string          `json:"peak_day"`
	PeakOrders           int             `json:"peak_orders"`
	Recommendation       string          `json:"recommendation"`
	DailyForecast        []ForecastPoint `json:"daily_forecast"`
}

type ForecastPoint struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}
