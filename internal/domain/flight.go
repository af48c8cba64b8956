package domain

import "time"

// Flight is owned by the flight data service; the booking state only relies on ID.
type Flight struct {
	ID      int64     `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Date    time.Time `json:"date"`
	Delayed bool      `json:"delayed"`
}
