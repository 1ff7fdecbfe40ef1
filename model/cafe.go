package model

import "time"

// Cafe is the single entity of the directory. The wire format keeps the
// snake_case keys of the original API so existing consumers keep working.
// Seats stays a string on purpose: it holds ranges like "10-20".
type Cafe struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:250;not null;uniqueIndex"`
	MapURL       string    `json:"map_url" gorm:"size:500;not null"`
	ImgURL       string    `json:"img_url" gorm:"size:500;not null"`
	Location     string    `json:"location" gorm:"size:250;not null;index"`
	Seats        string    `json:"seats" gorm:"size:250;not null"`
	HasToilet    bool      `json:"has_toilet" gorm:"not null"`
	HasWifi      bool      `json:"has_wifi" gorm:"not null"`
	HasSockets   bool      `json:"has_sockets" gorm:"not null"`
	CanTakeCalls bool      `json:"can_take_calls" gorm:"not null"`
	CoffeePrice  *string   `json:"coffee_price" gorm:"size:250"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
