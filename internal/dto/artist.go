package dto

import "time"

type ArtistDTO struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	ImageUrl         string     `json:"imageUrl"`
	Bio              string     `json:"bio"`
	Genre            string     `json:"genre"`
	Country          string     `json:"country"`
	BirthDate        *time.Time `json:"birthDate"`
	DeathDate        *time.Time `json:"deathDate"`
	WebsiteUrl       string     `json:"websiteUrl"`
	SocialMediaLinks string     `json:"socialMediaLinks"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type CreateArtistDTO struct {
	Name             string     `json:"name" validate:"required,min=3,max=100"`
	ImageUrl         string     `json:"imageUrl" validate:"omitempty,max=1024"`
	Bio              string     `json:"bio" validate:"omitempty,max=500"`
	Genre            string     `json:"genre" validate:"omitempty,min=3,max=100"`
	Country          string     `json:"country" validate:"omitempty,max=100"`
	BirthDate        *time.Time `json:"birthDate"`
	DeathDate        *time.Time `json:"deathDate"`
	WebsiteUrl       string     `json:"websiteUrl" validate:"omitempty,max=1024"`
	SocialMediaLinks string     `json:"socialMediaLinks" validate:"omitempty,max=2048"`
}

type UpdateArtistDTO struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version" validate:"gte=0"`
	CreateArtistDTO
}
