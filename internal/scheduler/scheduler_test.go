package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sub-minute intervals must schedule a job rather than truncating to zero
// and silently disabling the refresh.
func TestStartSubMinuteInterval(t *testing.T) {
	s := New(90*time.Second, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 1, s.scheduler.Len())
}

func TestStartDisabled(t *testing.T) {
	s := New(0, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 0, s.scheduler.Len())
}
