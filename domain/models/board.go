package models

import "time"

type Board struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Relations
	Tasks []Task `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

func (Board) TableName() string {
	return "boards"
}
