package offline

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"fleetworks/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueAssignsIDs(t *testing.T) {
	q := NewQueue()

	a := q.Enqueue(models.Inspection{VehicleID: 1})
	b := q.Enqueue(models.Inspection{VehicleID: 2})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, q.Len())
}

func TestQueue_ReplayFIFO(t *testing.T) {
	q := NewQueue()
	for i := uint(1); i <= 3; i++ {
		q.Enqueue(models.Inspection{VehicleID: i})
	}

	var order []uint
	n, err := q.Replay(func(sub Submission) error {
		order = append(order, sub.Inspection.VehicleID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint{1, 2, 3}, order)
	assert.Zero(t, q.Len())
}

func TestQueue_ReplayStopsOnErrorAndRequeues(t *testing.T) {
	q := NewQueue()
	for i := uint(1); i <= 3; i++ {
		q.Enqueue(models.Inspection{VehicleID: i})
	}

	n, err := q.Replay(func(sub Submission) error {
		if sub.Inspection.VehicleID == 2 {
			return errors.New("still offline")
		}
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 1, n)
	require.Equal(t, 2, q.Len(), "failed entry and its successors stay queued")

	pending := q.Pending()
	assert.Equal(t, uint(2), pending[0].Inspection.VehicleID)
	assert.Equal(t, uint(3), pending[1].Inspection.VehicleID)
}

func TestIsConnectivityError(t *testing.T) {
	assert.False(t, IsConnectivityError(nil))
	assert.False(t, IsConnectivityError(errors.New("duplicate key value")))

	assert.True(t, IsConnectivityError(&net.OpError{Op: "dial", Err: errors.New("timeout")}))
	assert.True(t, IsConnectivityError(fmt.Errorf("dial tcp 127.0.0.1:5432: connect: connection refused")))
	assert.True(t, IsConnectivityError(errors.New("write: broken pipe")))
}
