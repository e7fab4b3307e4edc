package entities

import "time"

type Location struct {
	Lat float64
	Lng float64
}

func (l Location) IsValid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

type DriverLocation struct {
	DriverID  string
	Location  Location
	UpdatedAt time.Time
}
