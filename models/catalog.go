package models

import "time"

type Make struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
}

type Model struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	MakeID    uint      `json:"make_id" gorm:"not null;uniqueIndex:idx_models_make_slug"`
	Make      *Make     `json:"-" gorm:"foreignKey:MakeID"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex:idx_models_make_slug"`
	CreatedAt time.Time `json:"-"`
}
