package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryFilters narrows owner-scoped entry listings. OwnerID is always set by
// the service layer; everything else is optional.
type EntryFilters struct {
	OwnerID    uuid.UUID
	Type       string
	CategoryID uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
