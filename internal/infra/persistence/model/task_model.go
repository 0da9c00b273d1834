package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskModel mirrors the 'tasks' table. CategoryID is nullable; a task without
// a category stores NULL rather than a zero UUID.
type TaskModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content        string     `gorm:"type:varchar(200);not null"`
	CategoryID     *uuid.UUID `gorm:"type:uuid"`
	DueDate        *time.Time
	ReminderActive bool `gorm:"not null;default:false"`
	ReminderLead   int  `gorm:"not null;default:30"`
	Completed      bool `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}

// BeforeCreate assigns a UUIDv7 primary key.
func (m *TaskModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id
	}

	return nil
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUIDv7 primary key.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id
	}

	return nil
}
