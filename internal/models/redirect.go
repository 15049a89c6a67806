package models

import "time"

// Redirect maps an old URL to a new one with a configured HTTP status.
// Hits only ever increases; the increment happens in SQL so concurrent
// matches on the same rule never lose updates.
type Redirect struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OldURL     string    `gorm:"size:500;not null;index" json:"old_url"`
	NewURL     string    `gorm:"size:500;not null" json:"new_url"`
	StatusCode int       `gorm:"default:301" json:"status_code"` // 301 or 302
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	Hits       int64     `gorm:"default:0" json:"hits"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Redirect) TableName() string { return "seo_redirects" }
