package ingestor

import (
	"errors"
	"testing"
	"time"

	lj "github.com/elastic/go-lumber/lj"
)

func TestParseEvent_MissingMessageField(t *testing.T) {
	evt := map[string]interface{}{"@timestamp": "2024-03-12T15:04:05Z"}
	var ev Event
	err := parseEvent(evt, &ev)
	if !errors.Is(err, errMissingMessage) {
		t.Errorf("expected missing message field error, got %v", err)
	}
}

func TestParseEvent_MissingTimestamp(t *testing.T) {
	evt := map[string]interface{}{"message": "hello"}
	var ev Event
	err := parseEvent(evt, &ev)
	if !errors.Is(err, errMissingTimestamp) {
		t.Errorf("expected missing timestamp error, got %v", err)
	}
}

func TestParseEvent_InvalidTimestamp(t *testing.T) {
	evt := map[string]interface{}{"message": "hello", "@timestamp": "12/Mar/2024:15:04:05 -0700"}
	var ev Event
	if err := parseEvent(evt, &ev); err == nil {
		t.Error("expected error for non RFC 3339 timestamp, got nil")
	}
}

func TestParseEvent_Valid(t *testing.T) {
	evt := map[string]interface{}{
		"message":    "GET /health 200",
		"@timestamp": "2024-03-12T15:04:05.123+02:00",
		"source":     "/var/log/nginx/access.log",
	}
	var ev Event
	if err := parseEvent(evt, &ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 12, 13, 4, 5, 123000000, time.UTC)
	if !ev.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, ev.Timestamp)
	}
	if ev.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", ev.Timestamp.Location())
	}
	if ev.Message != "GET /health 200" {
		t.Errorf("unexpected message %q", ev.Message)
	}
	if ev.Source != "/var/log/nginx/access.log" {
		t.Errorf("unexpected source %q", ev.Source)
	}
}

func TestParseEvent_SourceFallbacks(t *testing.T) {
	evt := map[string]interface{}{"message": "m", "@timestamp": "2024-03-12T15:04:05Z", "host": "web-1"}
	var ev Event
	if err := parseEvent(evt, &ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Source != "web-1" {
		t.Errorf("expected host as source, got %q", ev.Source)
	}

	evt = map[string]interface{}{
		"message":    "m",
		"@timestamp": "2024-03-12T15:04:05Z",
		"host":       map[string]interface{}{"name": "web-2"},
	}
	ev = Event{}
	if err := parseEvent(evt, &ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Source != "web-2" {
		t.Errorf("expected host.name as source, got %q", ev.Source)
	}
}

func makeBatch(events ...interface{}) *lj.Batch {
	return &lj.Batch{
		Events: events,
	}
}

func makeEvent(ts, msg string) map[string]interface{} {
	return map[string]interface{}{"@timestamp": ts, "message": msg}
}

func TestReadBatch_EmptyChannel(t *testing.T) {
	ing := &TCPIngestor{
		events: make(chan *lj.Batch),
	}
	// Channel is empty, should return empty slice
	got, err := ing.ReadBatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestReadBatch_ClosedChannel(t *testing.T) {
	ing := &TCPIngestor{
		events: make(chan *lj.Batch),
	}
	close(ing.events)
	got, err := ing.ReadBatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestReadBatch_MultipleEventsAndBatches(t *testing.T) {
	ing := &TCPIngestor{
		events: make(chan *lj.Batch, 2),
	}
	ing.events <- makeBatch(
		makeEvent("2024-03-12T15:04:05Z", "a"),
		makeEvent("2024-03-12T15:04:06Z", "b"),
	)
	ing.events <- makeBatch(makeEvent("2024-03-12T15:04:04Z", "c"))

	got, err := ing.ReadBatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Seq != uint64(i) {
			t.Errorf("event %d: expected seq %d, got %d", i, i, ev.Seq)
		}
	}

	// Sequence numbers continue across reads.
	ing.events <- makeBatch(makeEvent("2024-03-12T15:04:07Z", "d"))
	got, _ = ing.ReadBatch()
	if len(got) != 1 || got[0].Seq != 3 {
		t.Errorf("expected continuing seq 3, got %+v", got)
	}
}

func TestReadBatch_SkipsInvalidEvents(t *testing.T) {
	ing := &TCPIngestor{
		events: make(chan *lj.Batch, 1),
	}
	ing.events <- makeBatch(
		makeEvent("2024-03-12T15:04:05Z", "ok"),
		map[string]interface{}{"message": "no timestamp"},
		"not a map",
		42,
	)
	got, err := ing.ReadBatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Message != "ok" {
		t.Errorf("expected one valid event, got %+v", got)
	}
	if ing.Skipped() != 3 {
		t.Errorf("expected 3 skipped events, got %d", ing.Skipped())
	}
}

func TestSortEvents_StableByTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base.Add(2 * time.Second), Message: "late", Seq: 0},
		{Timestamp: base, Message: "first-a", Seq: 1},
		{Timestamp: base.Add(time.Second), Message: "middle", Seq: 2},
		{Timestamp: base, Message: "first-b", Seq: 3},
		{Timestamp: base, Message: "first-c", Seq: 4},
	}
	SortEvents(events)

	want := []string{"first-a", "first-b", "first-c", "middle", "late"}
	for i, ev := range events {
		if ev.Message != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], ev.Message)
		}
	}
}

func TestSortEvents_MostlyOrderedStream(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := make([]Event, 1000)
	for i := range events {
		events[i] = Event{Timestamp: base.Add(time.Duration(i) * time.Millisecond), Seq: uint64(i)}
	}
	// A few late arrivals.
	events[100], events[900] = events[900], events[100]
	events[500], events[501] = events[501], events[500]

	SortEvents(events)
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Fatalf("events out of order at index %d", i)
		}
	}
}

func TestIsClosed(t *testing.T) {
	ing, err := NewTCPIngestor("127.0.0.1:0", time.Second)
	if err != nil {
		t.Fatalf("NewTCPIngestor: %v", err)
	}
	if ing.IsClosed() {
		t.Fatal("fresh ingestor reported closed")
	}
	ing.Close()
	if !ing.IsClosed() {
		t.Error("expected ingestor to be closed after Close")
	}
}
