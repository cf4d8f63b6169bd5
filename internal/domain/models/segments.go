package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
)

// ParseSegments decodes a trip's trip_data blob into typed segments.
// Older rows were written double-encoded (a JSON string holding the
// array), so both shapes are accepted. An empty-but-valid array is not
// an error; it means "no sellable segments".
func ParseSegments(t Trip) ([]Segment, error) {
	raw := t.TripData
	if len(raw) == 0 || string(raw) == "null" {
		return []Segment{}, nil
	}

	var segs []Segment
	if err := json.Unmarshal(raw, &segs); err == nil {
		return segs, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &segs); err == nil {
			return segs, nil
		}
	}

	return nil, domain.MalformedSegmentDataError{
		TripID: t.ID,
		Err:    fmt.Errorf("trip_data is neither a segment array nor an encoded array"),
	}
}

// SerializeSegments encodes a segment array for the trip_data column.
func SerializeSegments(segs []Segment) (json.RawMessage, error) {
	if segs == nil {
		segs = []Segment{}
	}
	out, err := json.Marshal(segs)
	if err != nil {
		return nil, domain.InternalError{Msg: "no se pudo serializar trip_data", Err: err}
	}
	return out, nil
}

// ComposeBusinessID builds the client-facing segment identifier,
// "<tripRowId>_<segmentIndex>".
func ComposeBusinessID(tripID int64, index int) string {
	return fmt.Sprintf("%d_%d", tripID, index)
}

// SplitBusinessID extracts the record id and segment index from a
// business trip id. The record id portion may itself contain no
// underscores; the index is always the final numeric suffix.
func SplitBusinessID(businessID string) (int64, int, error) {
	idx := strings.LastIndex(businessID, "_")
	if idx < 0 || idx == len(businessID)-1 {
		return 0, 0, domain.SegmentNotFoundError{BusinessID: businessID}
	}
	recordID, err := strconv.ParseInt(businessID[:idx], 10, 64)
	if err != nil {
		return 0, 0, domain.SegmentNotFoundError{BusinessID: businessID}
	}
	segIndex, err := strconv.Atoi(businessID[idx+1:])
	if err != nil || segIndex < 0 {
		return 0, 0, domain.SegmentNotFoundError{BusinessID: businessID}
	}
	return recordID, segIndex, nil
}

// ResolveSegment maps a business trip id onto the concrete segment of a
// trip. Stale ids from client caches are expected, so out-of-range or
// malformed ids come back as SegmentNotFoundError values, not panics.
func ResolveSegment(t Trip, businessID string) (Segment, int, error) {
	_, index, err := SplitBusinessID(businessID)
	if err != nil {
		return Segment{}, 0, err
	}
	segs, err := ParseSegments(t)
	if err != nil {
		return Segment{}, 0, err
	}
	if index >= len(segs) {
		return Segment{}, 0, domain.SegmentNotFoundError{BusinessID: businessID}
	}
	return segs[index], index, nil
}
