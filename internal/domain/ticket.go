package domain

// Ticket is a passenger's claim on a flight.
type Ticket struct {
	PassengerID int64 `json:"passenger_id"`
	FlightID    int64 `json:"flight_id"`
}

type User struct {
	PassengerID int64  `json:"passenger_id"`
	Username    string `json:"username"`
}
