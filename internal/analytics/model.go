package analytics

import "time"

// Visitor is one tracked browsing session.
type Visitor struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	IPAddress    *string   `json:"ip_address,omitempty"`
	UserAgent    *string   `json:"user_agent,omitempty"`
	Referrer     *string   `json:"referrer,omitempty"`
	Country      *string   `json:"country,omitempty"`
	City         *string   `json:"city,omitempty"`
	Device       *string   `json:"device,omitempty"`
	Browser      *string   `json:"browser,omitempty"`
	OS           *string   `json:"os,omitempty"`
	VisitedPages []string  `json:"visited_pages"`
	TimeOnSite   *int      `json:"time_on_site,omitempty"`
	IsReturning  bool      `json:"is_returning"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PageView is a single page hit, optionally tied to a visitor.
type PageView struct {
	ID        int64     `json:"id"`
	VisitorID *int64    `json:"visitor_id,omitempty"`
	Page      string    `json:"page"`
	Title     *string   `json:"title,omitempty"`
	TimeSpent *int      `json:"time_spent,omitempty"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type PageCount struct {
	Page  string `json:"page"`
	Views int64  `json:"views"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// Overview is the aggregate payload served by the analytics-data endpoint.
// Every field comes from its own query; the numbers are not a consistent
// snapshot of a single point in time.
type Overview struct {
	TotalVisitors     int64          `json:"total_visitors"`
	UniqueVisitors    int64          `json:"unique_visitors"`
	PageViews         int64          `json:"page_views"`
	AvgTimeOnSite     int64          `json:"avg_time_on_site"`
	TopPages          []PageCount    `json:"top_pages"`
	VisitorsByCountry []CountryCount `json:"visitors_by_country"`
	DeviceStats       []DeviceCount  `json:"device_stats"`
	BrowserStats      []BrowserCount `json:"browser_stats"`
}
