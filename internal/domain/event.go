package domain

import "time"

type Event struct {
	Model
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	Location    string    `gorm:"size:100" json:"location"`
	StartDate   time.Time `gorm:"index" json:"startDate"`
	EndDate     time.Time `gorm:"index" json:"endDate"`

	EventArtists []EventArtist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Specify table name
func (Event) TableName() string {
	return "event"
}

// EventArtist links an artist to an event they take part in.
type EventArtist struct {
	EventID   int64     `gorm:"primaryKey;autoIncrement:false" json:"eventId"`
	ArtistID  int64     `gorm:"primaryKey;autoIncrement:false" json:"artistId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName Specify table name
func (EventArtist) TableName() string {
	return "event_artist"
}
