package models

import (
	"time"
)

// Theme is a catalog category ("Gift Boxes", "Premium Nuts", ...).
// Themes are created by admins and read anonymously; no delete route exists.
type Theme struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	ImageURL    string    `gorm:"size:500" json:"imageUrl"`
	BannerURL   string    `gorm:"size:500;not null" json:"bannerUrl"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
