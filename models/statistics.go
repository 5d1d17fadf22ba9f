package models

// Timeframe bounds the statistics window.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
)

// Valid reports whether t is a known timeframe.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeWeek, TimeframeMonth, TimeframeQuarter, TimeframeYear:
		return true
	}
	return false
}

type DriverRideCount struct {
	Name  string `json:"name"`
	Rides int    `json:"rides"`
}

// CarpoolStatistics is the admin statistics payload. ByDayOfWeek is indexed from Sunday.
type CarpoolStatistics struct {
	TotalRides  int               `json:"totalRides"`
	ByDriver    []DriverRideCount `json:"byDriver"`
	ByRouteType map[string]int    `json:"byRouteType"`
	ByDayOfWeek []int             `json:"byDayOfWeek"`
}
