package domain

import "time"

// Passenger describes one traveller on a journey booking.
type Passenger struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Type  string `json:"type" binding:"required"`
}

// JourneyBookingRequest is the payload submitted to POST /user/book-journey.
// TotalAmount is the fare in the currency's minor unit.
type JourneyBookingRequest struct {
	JourneyID     string      `json:"journeyId" binding:"required"`
	StartLocation string      `json:"startLocation" binding:"required"`
	EndLocation   string      `json:"endLocation" binding:"required"`
	StartTime     string      `json:"startTime" binding:"required"`
	EndTime       string      `json:"endTime" binding:"required"`
	Passengers    []Passenger `json:"passengers" binding:"required,dive"`
	CardID        string      `json:"cardId" binding:"required"`
	TotalAmount   int         `json:"totalAmount" binding:"required"`
	TestMode      bool        `json:"testMode"`
}

// BookingConfirmation is the document the journeys backend answers a booking
// with. Callers of the client treat the booking reply as raw bytes since the
// upstream contract pins no schema; the type exists for the server side.
type BookingConfirmation struct {
	Status     string `json:"status"`
	BookingRef string `json:"bookingRef"`
	Message    string `json:"message"`
}

// Booking is a persisted booking: the accepted request plus the reference
// assigned to it.
type Booking struct {
	Ref       string                `json:"ref"`
	Request   JourneyBookingRequest `json:"request"`
	CreatedAt time.Time             `json:"createdAt"`
}
