package entities

// User is an account known to the portfolio backend. Password is stored as
// given and never serialized.
type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
