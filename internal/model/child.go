package model

import "time"

// Child is a user-owned named record that parents can reference.
type Child struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Parents []Parent `json:"-" gorm:"many2many:parent_children"`
}
