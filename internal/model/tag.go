package model

import "time"

// Tag is a user-owned label that parents can reference. Names may repeat,
// even within one owner.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Parents []Parent `json:"-" gorm:"many2many:parent_tags"`
}
