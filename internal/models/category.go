package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategories is the fixed set seeded for a user whose category list is
// empty on first access.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Personal Care",
	"Other",
}

// Category is a per-user label for entries. Uniqueness is case-insensitive
// per owner; NameLower carries the unique index so the constraint lives in
// the database rather than application code.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_owner_name" json:"owner_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	NameLower string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_owner_name" json:"-"`
	Seeded    bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	c.Name = strings.TrimSpace(c.Name)
	c.NameLower = strings.ToLower(c.Name)

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	if c.Name != "" {
		c.NameLower = strings.ToLower(strings.TrimSpace(c.Name))
	}
	return nil
}

func (c *Category) Validate() error {
	if c.OwnerID == uuid.Nil {
		return errors.New("category owner is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if len(c.Name) > 100 {
		return errors.New("category name too long")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
