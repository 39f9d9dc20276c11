package models

import "venuedesk/services/status"

// FinancialRow is one event of the financial report. Amounts are rounded to cents.
type FinancialRow struct {
	EventID       string          `json:"eventId"`
	EventNumber   string          `json:"eventNumber,omitempty"`
	Title         string          `json:"title"`
	StartDate     string          `json:"startDate,omitempty"`
	EndDate       string          `json:"endDate,omitempty"`
	Status        status.Category `json:"status"`
	StatusText    string          `json:"statusText"`
	MarketSegment string          `json:"marketSegment,omitempty"`
	SegmentKey    string          `json:"segmentKey,omitempty"`
	Net           float64         `json:"net"`
	Discount      float64         `json:"discount"`
	Tax           float64         `json:"tax"`
	GrandTotal    float64         `json:"grandTotal"`
	TotalSource   string          `json:"totalSource"`
	QuoteError    string          `json:"quoteError,omitempty"`
}

// ReportBucket aggregates rows sharing a status or a segment.
type ReportBucket struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Events     int     `json:"events"`
	GrandTotal float64 `json:"grandTotal"`
}

type FinancialReport struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Rows       []FinancialRow `json:"rows"`
	ByStatus   []ReportBucket `json:"byStatus"`
	BySegment  []ReportBucket `json:"bySegment"`
	Net        float64        `json:"net"`
	Discount   float64        `json:"discount"`
	Tax        float64        `json:"tax"`
	GrandTotal float64        `json:"grandTotal"`
}

// OccupancyRow counts the blocking activity-days of one room.
type OccupancyRow struct {
	Room         string `json:"room"`
	BookedDays   int    `json:"bookedDays"`
	Events       int    `json:"events"`
	Confirmed    int    `json:"confirmed"`
	Pending      int    `json:"pending"`
	InternalOnly int    `json:"internal"`
}

type OccupancyReport struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Days int            `json:"days"`
	Rows []OccupancyRow `json:"rows"`
}
