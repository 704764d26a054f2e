package models

// YearReport is the rendered summary of one year.
type YearReport struct {
	Year            int         `json:"year"`
	Bots            GroupReport `json:"bots"`
	People          GroupReport `json:"people"`
	Countries       []Share     `json:"countries,omitempty"`
	TopLevelDomains []Share     `json:"top_level_domains,omitempty"`
}

// GroupReport summarises one group of a year.
type GroupReport struct {
	Keys     int `json:"keys"`
	Requests int `json:"requests"`
	Sessions int `json:"sessions"`

	DayRequests   []int `json:"day_requests"`
	DaySessions   []int `json:"day_sessions"`
	WeekRequests  []int `json:"week_requests"`
	WeekSessions  []int `json:"week_sessions"`
	MonthRequests []int `json:"month_requests"`
	MonthSessions []int `json:"month_sessions"`

	TopByRequests []KeyReport `json:"top_by_requests"`
	TopBySessions []KeyReport `json:"top_by_sessions"`

	SessionsHistogram []Bucket `json:"sessions_histogram"`
	RequestsHistogram []Bucket `json:"requests_histogram"`
}

// KeyReport is one ranked key.
type KeyReport struct {
	Rank        int    `json:"rank"`
	Key         string `json:"key"`
	HostName    string `json:"host_name"`
	Geolocation string `json:"geolocation,omitempty"`
	BotURL      string `json:"bot_url,omitempty"`
	Requests    int    `json:"requests"`
	Sessions    int    `json:"sessions"`
}

// Share is the weighted percentage of one value within a sample.
type Share struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Bucket counts keys whose value lies in [Min, Max]. Max is 0 for the open last bucket.
type Bucket struct {
	Min   int `json:"min"`
	Max   int `json:"max,omitempty"`
	Count int `json:"count"`
}
