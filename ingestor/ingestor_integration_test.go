package ingestor

import (
	"testing"
	"time"

	client "github.com/elastic/go-lumber/client/v2"
	"github.com/stretchr/testify/require"
)

func TestTCPIngestor_ReceivesLumberjackBatches(t *testing.T) {
	ing, err := NewTCPIngestor("127.0.0.1:0", 5*time.Second)
	require.NoError(t, err)
	defer ing.Close()
	require.NoError(t, ing.Accept())

	conn, err := client.SyncDial(ing.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	n, err := conn.Send([]interface{}{
		map[string]interface{}{"@timestamp": "2024-03-12T15:04:07Z", "message": "third", "host": "web-1"},
		map[string]interface{}{"@timestamp": "2024-03-12T15:04:05Z", "message": "first", "host": "web-1"},
		map[string]interface{}{"message": "broken"},
		map[string]interface{}{"@timestamp": "2024-03-12T15:04:06Z", "message": "second", "host": "web-2"},
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	// Send returns after the ACK, which is sent once the batch is queued.
	var events []Event
	require.Eventually(t, func() bool {
		batch, err := ing.ReadBatch()
		if err != nil {
			return false
		}
		events = append(events, batch...)
		return len(events) == 3
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, 1, ing.Skipped())

	SortEvents(events)
	require.Equal(t, "first", events[0].Message)
	require.Equal(t, "second", events[1].Message)
	require.Equal(t, "third", events[2].Message)
	require.Equal(t, "web-2", events[1].Source)
}
