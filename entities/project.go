package entities

import "time"

type Project struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	GithubURL   *string   `json:"githubUrl"`
	DemoURL     *string   `json:"demoUrl"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time `gorm:"index;not null" json:"createdAt"`
}

// Clone returns a copy that shares no slices with p. An empty tag list
// stays empty rather than becoming nil.
func (p Project) Clone() Project {
	if p.Tags != nil {
		p.Tags = append([]string{}, p.Tags...)
	}
	return p
}
