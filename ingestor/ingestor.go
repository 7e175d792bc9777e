package ingestor

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/ChristianF88/runsort/timsort"
	lj "github.com/elastic/go-lumber/lj"
	srv2 "github.com/elastic/go-lumber/server/v2"
)

// Event is one shipped log line. Seq is the arrival position and breaks
// timestamp ties.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Message   string    `json:"message"`
	Seq       uint64    `json:"seq"`
}

var (
	errMissingMessage   = errors.New("missing message field")
	errMissingTimestamp = errors.New("missing @timestamp field")
)

// --- TCP Ingestor using go-lumber v2 ---

type TCPIngestor struct {
	listener    net.Listener
	readTimeout time.Duration // for server
	events      chan *lj.Batch
	server      *srv2.Server
	seq         uint64
	skipped     atomic.Int64
	closed      atomic.Bool
}

func NewTCPIngestor(addr string, readTimeout time.Duration) (*TCPIngestor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &TCPIngestor{
		listener:    ln,
		readTimeout: readTimeout,
		events:      make(chan *lj.Batch, 1000),
	}, nil
}

// Addr returns the address the ingestor listens on.
func (ing *TCPIngestor) Addr() net.Addr {
	return ing.listener.Addr()
}

// Accept starts the lumberjack v2 Server.
func (ing *TCPIngestor) Accept() error {
	srv, err := srv2.NewWithListener(
		ing.listener,
		srv2.Timeout(ing.readTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create lumberjack server: %w", err)
	}
	ing.server = srv

	// Pull batches off ReceiveChan and ack them.
	go func() {
		for batch := range ing.server.ReceiveChan() {
			ing.events <- batch
			batch.ACK()
		}
		ing.closed.Store(true)
		close(ing.events)
	}()

	return nil
}

// parseEvent reads the message and @timestamp (RFC 3339) fields of a decoded
// lumberjack event. The source is taken from "source" or, failing that, from
// "host" or "host.name".
func parseEvent(evt map[string]interface{}, out *Event) error {
	msg, ok := evt["message"].(string)
	if !ok {
		return errMissingMessage
	}
	out.Message = msg

	raw, ok := evt["@timestamp"].(string)
	if !ok {
		return errMissingTimestamp
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("timestamp parse error: %w", err)
	}
	out.Timestamp = ts.UTC()

	switch {
	case stringField(evt, "source") != "":
		out.Source = stringField(evt, "source")
	case stringField(evt, "host") != "":
		out.Source = stringField(evt, "host")
	default:
		if host, ok := evt["host"].(map[string]interface{}); ok {
			out.Source = stringField(host, "name")
		}
	}
	return nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// ReadBatch drains every batch that is currently available without blocking.
// Events that cannot be parsed are dropped and counted in Skipped.
func (ing *TCPIngestor) ReadBatch() ([]Event, error) {
	var out []Event

	for {
		select {
		case batch, ok := <-ing.events:
			if !ok {
				return out, nil
			}
			for _, evt := range batch.Events {
				m, ok := evt.(map[string]interface{})
				if !ok {
					ing.skipped.Add(1)
					continue
				}
				var entry Event
				if err := parseEvent(m, &entry); err != nil {
					ing.skipped.Add(1)
					continue
				}
				entry.Seq = ing.seq
				ing.seq++
				out = append(out, entry)
			}
		default:
			// Channel is empty, return what we have
			return out, nil
		}
	}
}

// Skipped reports how many events were dropped as unparsable.
func (ing *TCPIngestor) Skipped() int {
	return int(ing.skipped.Load())
}

// IsClosed reports whether the server has stopped delivering batches.
func (ing *TCPIngestor) IsClosed() bool {
	return ing.closed.Load()
}

// Close shuts down the server and listener.
func (ing *TCPIngestor) Close() error {
	ing.closed.Store(true)
	if ing.server != nil {
		ing.server.Close()
	}
	return ing.listener.Close()
}

// SortEvents orders events by timestamp. Shippers deliver mostly ordered
// streams, which is the case timsort handles in close to linear time; equal
// timestamps keep their arrival order.
func SortEvents(events []Event) {
	timsort.Sort(events, func(a, b Event) bool {
		return a.Timestamp.Before(b.Timestamp)
	})
}
