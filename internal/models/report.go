package models

// DashboardSummary is the landing page payload
type DashboardSummary struct {
	OccupancyRate      float64            `json:"occupancyRate"`
	OccupiedRooms      int                `json:"occupiedRooms"`
	TotalRooms         int                `json:"totalRooms"`
	TodayCheckIns      int                `json:"todayCheckIns"`
	MonthlyRevenue     float64            `json:"monthlyRevenue"`
	PendingTasks       int                `json:"pendingTasks"`
	VIPGuests          int                `json:"vipGuests"`
	TotalGuests        int                `json:"totalGuests"`
	RecentReservations []Reservation      `json:"recentReservations"`
	PriorityTasks      []HousekeepingTask `json:"priorityTasks"`
}

// ReportRange selects the window a report covers
type ReportRange string

const (
	RangeToday     ReportRange = "today"
	RangeWeek      ReportRange = "week"
	RangeThisMonth ReportRange = "thisMonth"
	RangeLastMonth ReportRange = "lastMonth"
)

// IsValid checks the range against the known set
func (r ReportRange) IsValid() bool {
	switch r {
	case RangeToday, RangeWeek, RangeThisMonth, RangeLastMonth:
		return true
	}
	return false
}

// SourceRevenue is paid revenue attributed to one booking channel
type SourceRevenue struct {
	Source  BookingSource `json:"source"`
	Revenue float64       `json:"revenue"`
}

// RoomTypePerformance is bookings and paid revenue for one room type
type RoomTypePerformance struct {
	RoomType string  `json:"roomType"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// DailyPoint is one day of the trailing seven-day series
type DailyPoint struct {
	Date     string  `json:"date"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// Report is the aggregated reports page payload
type Report struct {
	Range           ReportRange           `json:"range"`
	From            string                `json:"from"`
	To              string                `json:"to"`
	TotalRevenue    float64               `json:"totalRevenue"`
	TotalBookings   int                   `json:"totalBookings"`
	OccupancyRate   float64               `json:"occupancyRate"`
	NewGuests       int                   `json:"newGuests"`
	AverageRate     float64               `json:"averageRate"`
	RevenueBySource []SourceRevenue       `json:"revenueBySource"`
	RoomTypes       []RoomTypePerformance `json:"roomTypes"`
	LastSevenDays   []DailyPoint          `json:"lastSevenDays"`
}
