package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
)

func sampleSegments() []Segment {
	return []Segment{
		{Origin: "CityA", Destination: "CityB", DepartureDate: "2025-05-28", DepartureTime: "08:00", ArrivalTime: "10:00", Price: 100, AvailableSeats: 10, TripID: "42_0", IsMainTrip: true},
		{Origin: "CityB", Destination: "CityC", DepartureDate: "2025-05-28", DepartureTime: "10:15", ArrivalTime: "12:00", Price: 80, AvailableSeats: 10, TripID: "42_1"},
	}
}

func TestParseSegmentsRoundTrip(t *testing.T) {
	segs := sampleSegments()
	raw, err := SerializeSegments(segs)
	if err != nil {
		t.Fatalf("serialize error: %v", err)
	}

	got, err := ParseSegments(Trip{ID: 42, TripData: raw})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !reflect.DeepEqual(got, segs) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, segs)
	}
}

func TestParseSegmentsDoubleEncoded(t *testing.T) {
	segs := sampleSegments()
	inner, err := SerializeSegments(segs)
	if err != nil {
		t.Fatalf("serialize error: %v", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		t.Fatalf("re-encode error: %v", err)
	}

	got, err := ParseSegments(Trip{ID: 42, TripData: outer})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(got) != len(segs) || got[1].TripID != "42_1" {
		t.Fatalf("double-encoded parse mismatch: %+v", got)
	}
}

func TestParseSegmentsEmptyAndNull(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		got, err := ParseSegments(Trip{ID: 1, TripData: json.RawMessage(raw)})
		if err != nil {
			t.Fatalf("raw %q: unexpected error %v", raw, err)
		}
		if len(got) != 0 {
			t.Fatalf("raw %q: expected empty segments, got %d", raw, len(got))
		}
	}
}

func TestParseSegmentsMalformed(t *testing.T) {
	_, err := ParseSegments(Trip{ID: 7, TripData: json.RawMessage(`{"origin":"x"}`)})
	if !domain.IsMalformedSegmentData(err) {
		t.Fatalf("expected MalformedSegmentDataError, got %v", err)
	}
}

func TestBusinessIDBijection(t *testing.T) {
	raw, _ := SerializeSegments(sampleSegments())
	trip := Trip{ID: 42, TripData: raw}

	for i, want := range sampleSegments() {
		id := ComposeBusinessID(trip.ID, i)
		seg, index, err := ResolveSegment(trip, id)
		if err != nil {
			t.Fatalf("resolve %s: %v", id, err)
		}
		if index != i {
			t.Fatalf("resolve %s: index %d want %d", id, index, i)
		}
		if seg.Origin != want.Origin || seg.Price != want.Price {
			t.Fatalf("resolve %s: got %+v want %+v", id, seg, want)
		}
	}
}

func TestResolveSegmentNotFound(t *testing.T) {
	raw, _ := SerializeSegments(sampleSegments())
	trip := Trip{ID: 42, TripData: raw}

	cases := []string{"42_2", "42_99", "42", "42_", "_1", "abc_1", "42_x"}
	for _, id := range cases {
		if _, _, err := ResolveSegment(trip, id); !domain.IsSegmentNotFound(err) {
			t.Fatalf("id %q: expected SegmentNotFoundError, got %v", id, err)
		}
	}
}

func TestSplitBusinessID(t *testing.T) {
	recordID, index, err := SplitBusinessID("42_1")
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if recordID != 42 || index != 1 {
		t.Fatalf("split mismatch: %d %d", recordID, index)
	}
}
