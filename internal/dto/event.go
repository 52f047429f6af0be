package dto

import "time"

type EventDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Version     int64     `json:"version"`
}

type CreateEventDTO struct {
	Title       string    `json:"title" validate:"required,max=150"`
	Description string    `json:"description" validate:"max=1000"`
	Location    string    `json:"location" validate:"max=100"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

type UpdateEventDTO struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version" validate:"gte=0"`
	CreateEventDTO
}

// EventArtistDTO is the link between an event and a participating artist.
type EventArtistDTO struct {
	EventID  int64 `json:"eventId"`
	ArtistID int64 `json:"artistId"`
}
