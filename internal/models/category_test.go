package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_BeforeCreate(t *testing.T) {
	category := Category{
		OwnerID: uuid.New(),
		Name:    "  Groceries  ",
	}

	err := category.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Groceries", category.Name)
	assert.Equal(t, "groceries", category.NameLower)
	assert.NotZero(t, category.CreatedAt)
	assert.NotZero(t, category.UpdatedAt)
}

func TestCategory_BeforeCreate_BlankName(t *testing.T) {
	category := Category{
		OwnerID: uuid.New(),
		Name:    "   ",
	}

	err := category.BeforeCreate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category name is required")
}

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
		errMsg   string
	}{
		{
			name: "valid category",
			category: Category{
				OwnerID: uuid.New(),
				Name:    "Groceries",
			},
			wantErr: false,
		},
		{
			name: "missing owner",
			category: Category{
				Name: "Groceries",
			},
			wantErr: true,
			errMsg:  "category owner is required",
		},
		{
			name: "empty name",
			category: Category{
				OwnerID: uuid.New(),
				Name:    "",
			},
			wantErr: true,
			errMsg:  "category name is required",
		},
		{
			name: "name too long",
			category: Category{
				OwnerID: uuid.New(),
				Name:    strings.Repeat("x", 101),
			},
			wantErr: true,
			errMsg:  "category name too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	assert.Len(t, DefaultCategories, 10)
	assert.Contains(t, DefaultCategories, "Food & Dining")
	assert.Contains(t, DefaultCategories, "Other")

	// Names must be unique ignoring case, they share a per-owner unique index
	seen := make(map[string]bool)
	for _, name := range DefaultCategories {
		lower := strings.ToLower(name)
		assert.False(t, seen[lower], "Duplicate default category: %s", name)
		seen[lower] = true
	}
}
