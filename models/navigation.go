package models

// NavLink is one entry of the dashboard navigation bar.
type NavLink struct {
	Href string `json:"href"`
	Text string `json:"text"`
}
