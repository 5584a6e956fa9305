package kafka

import (
	"testing"
	"time"

	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.NewAlertEvent("session-1", domain.Alert{
		Level:   domain.AlertDangerous,
		Title:   "🚨 HIGH RADIATION ALERT",
		Message: "Within 50km of 1 dangerous plants: Indian Point",
		Plants:  []string{"Indian Point"},
	}, now)

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("session-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"level":"dangerous"`)
	assert.Contains(t, string(msg.Value), `"plants":["Indian Point"]`)
	assert.Equal(t, now, msg.Time)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "alert_level", msg.Headers[0].Key)
	assert.Equal(t, []byte("dangerous"), msg.Headers[0].Value)
	assert.Equal(t, "display_seconds", msg.Headers[1].Key)
	assert.Equal(t, []byte("15"), msg.Headers[1].Value)
	assert.Equal(t, "created_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
