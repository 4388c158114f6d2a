package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidPriority(t *testing.T) {
	require.True(t, ValidPriority(PriorityLow))
	require.True(t, ValidPriority(PriorityMedium))
	require.True(t, ValidPriority(PriorityHigh))
	require.False(t, ValidPriority("Urgent"))
	require.False(t, ValidPriority("low"))
	require.False(t, ValidPriority(""))
}

func TestValidStatusTransition(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		allowed  bool
	}{
		{TaskStatusPending, TaskStatusPending, true},
		{TaskStatusCompleted, TaskStatusCompleted, true},
		{TaskStatusOverdue, TaskStatusOverdue, true},
		{TaskStatusPending, TaskStatusCompleted, true},
		{TaskStatusOverdue, TaskStatusCompleted, true},
		{TaskStatusPending, TaskStatusOverdue, false},
		{TaskStatusCompleted, TaskStatusPending, false},
		{TaskStatusCompleted, TaskStatusOverdue, false},
		{TaskStatusOverdue, TaskStatusPending, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.allowed, ValidStatusTransition(tc.from, tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}
