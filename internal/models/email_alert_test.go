package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailAlert_WasDelivered(t *testing.T) {
	tests := []struct {
		name      string
		alert     EmailAlert
		delivered bool
	}{
		{
			name: "sent alert",
			alert: EmailAlert{
				Status: AlertStatusSent,
			},
			delivered: true,
		},
		{
			name: "failed alert",
			alert: EmailAlert{
				Status: AlertStatusFailed,
				Error:  "smtp: connection refused",
			},
			delivered: false,
		},
		{
			name:      "empty status",
			alert:     EmailAlert{},
			delivered: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.delivered, tt.alert.WasDelivered())
		})
	}
}

func TestEmailAlert_BeforeCreate(t *testing.T) {
	alert := EmailAlert{
		OwnerID:   uuid.New(),
		Recipient: "user@example.com",
		Subject:   "Budget Alert",
		Status:    AlertStatusSent,
	}

	err := alert.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, alert.ID)
	assert.NotZero(t, alert.CreatedAt)
}

func TestEmailAlert_BeforeCreate_KeepsExistingTimestamp(t *testing.T) {
	createdAt := time.Now().Add(-time.Hour)
	alert := EmailAlert{
		OwnerID:   uuid.New(),
		Recipient: "user@example.com",
		Subject:   "Budget Alert",
		Status:    AlertStatusFailed,
		CreatedAt: createdAt,
	}

	err := alert.BeforeCreate(nil)
	require.NoError(t, err)

	assert.Equal(t, createdAt, alert.CreatedAt)
}
