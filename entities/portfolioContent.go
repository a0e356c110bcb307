package entities

import "time"

// Well-known portfolio sections.
const (
	SectionHero  = "hero"
	SectionAbout = "about"
)

// PortfolioContent is one editable section of the portfolio page, keyed by
// Section. Metadata holds serialized structured data the backend never parses.
type PortfolioContent struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Section     string    `gorm:"uniqueIndex;not null" json:"section"`
	Title       *string   `json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Content     *string   `gorm:"type:text" json:"content"`
	ImageURL    *string   `json:"imageUrl"`
	Metadata    *string   `gorm:"type:text" json:"metadata"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

// TableName keeps the table name singular.
func (PortfolioContent) TableName() string {
	return "portfolio_content"
}
