package ordemservico

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrderStatus_Names(t *testing.T) {
	all := []WorkOrderStatus{StatusOpen, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled}
	for _, s := range all {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := ParseWorkOrderStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)

			text, err := s.MarshalText()
			require.NoError(t, err)
			var back WorkOrderStatus
			require.NoError(t, back.UnmarshalText(text))
			assert.Equal(t, s, back)
		})
	}

	_, err := ParseWorkOrderStatus("finished")
	assert.Error(t, err)
	assert.Equal(t, "WorkOrderStatus(9)", WorkOrderStatus(9).String())
	_, err = WorkOrderStatus(9).MarshalText()
	assert.Error(t, err)
}

func TestWorkOrderStatus_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Status WorkOrderStatus `json:"status"`
	}{StatusInProgress})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"in_progress"}`, string(data))
}

func TestWorkOrderStatus_Transitions(t *testing.T) {
	allowed := map[WorkOrderStatus][]WorkOrderStatus{
		StatusOpen:       {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted, StatusCancelled},
		StatusCompleted:  {StatusDelivered},
		StatusDelivered:  nil,
		StatusCancelled:  nil,
	}
	all := []WorkOrderStatus{StatusOpen, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled}
	for from, targets := range allowed {
		for _, to := range all {
			assert.Equal(t, contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusCompleted.AllowsLineChanges())
}

func TestWorkOrderStatus_Scan(t *testing.T) {
	var s WorkOrderStatus
	require.NoError(t, s.Scan("delivered"))
	assert.Equal(t, StatusDelivered, s)
	require.NoError(t, s.Scan([]byte("open")))
	assert.Equal(t, StatusOpen, s)
	assert.Error(t, s.Scan(42))

	v, err := StatusCancelled.Value()
	require.NoError(t, err)
	assert.Equal(t, "cancelled", v)
}

func contains(list []WorkOrderStatus, s WorkOrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
