package models

// GeolocationRecord is a looked up location and the day (DateLayout) it was stored.
type GeolocationRecord struct {
	IP          string `json:"ip"`
	Geolocation string `json:"geolocation"`
	Date        string `json:"date"`
}
