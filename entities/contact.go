package entities

import "time"

// Contact is a submission from the public contact form. Contacts are
// append-only.
type Contact struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"not null" json:"email"`
	ProjectType string    `gorm:"not null" json:"projectType"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"index;not null" json:"createdAt"`
}
