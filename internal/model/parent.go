package model

import "time"

// Parent is the main user-owned record: scalar details plus tag and child
// sets and an optional uploaded image. The owner is fixed at creation and
// never part of a mutable payload.
type Parent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	Age       int       `json:"age" gorm:"not null"`
	Job       string    `json:"job" gorm:"size:255;not null"`
	ImagePath string    `json:"image,omitempty" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. The many-to-many sets are replaced wholesale on update,
	// never merged.
	User     User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags     []Tag   `json:"tags" gorm:"many2many:parent_tags"`
	Children []Child `json:"children" gorm:"many2many:parent_children"`
}
