package domain

import "time"

type Artist struct {
	Model
	Name             string     `gorm:"size:100;not null;index" json:"name"`
	ImageUrl         string     `gorm:"size:1024" json:"imageUrl"`
	Bio              string     `gorm:"size:500" json:"bio"`
	Genre            string     `gorm:"size:100" json:"genre"`
	Country          string     `gorm:"size:100" json:"country"`
	BirthDate        *time.Time `json:"birthDate"`
	DeathDate        *time.Time `json:"deathDate"`
	WebsiteUrl       string     `gorm:"size:1024" json:"websiteUrl"`
	SocialMediaLinks string     `gorm:"size:2048" json:"socialMediaLinks"`

	Products     []Product     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EventArtists []EventArtist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Specify table name
func (Artist) TableName() string {
	return "artist"
}
