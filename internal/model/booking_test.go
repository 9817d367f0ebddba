package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotsUnmarshalArray(t *testing.T) {
	var ts TimeSlots
	require.NoError(t, json.Unmarshal([]byte(`[10,9,9]`), &ts))
	assert.Equal(t, TimeSlots{9, 10}, ts, "slots are sorted and deduplicated")
}

func TestTimeSlotsUnmarshalString(t *testing.T) {
	var ts TimeSlots
	require.NoError(t, json.Unmarshal([]byte(`"9, 10"`), &ts))
	assert.Equal(t, TimeSlots{9, 10}, ts)
}

func TestTimeSlotsUnmarshalMalformed(t *testing.T) {
	var ts TimeSlots
	require.NoError(t, json.Unmarshal([]byte(`{"bogus":true}`), &ts), "malformed shapes do not error")
	assert.Empty(t, ts)
}

func TestTimeSlotsRoundTrip(t *testing.T) {
	ts := ParseSlotString("9,10")
	assert.Equal(t, "9,10", ts.String())
	assert.Equal(t, []string{"9:00", "10:00"}, ts.Labels())
	assert.True(t, ts.Contains(9))
	assert.False(t, ts.Contains(11))
}

func TestParseSlotString(t *testing.T) {
	assert.Equal(t, TimeSlots{8, 9}, ParseSlotString(" 9 , 8 "))
	assert.Empty(t, ParseSlotString(""))
	assert.Equal(t, TimeSlots{9}, ParseSlotString("9,x,"), "non-numeric tokens are skipped")
}

func TestParseTimeSlotsShapes(t *testing.T) {
	assert.Equal(t, TimeSlots{9, 10}, ParseTimeSlots([]int{10, 9}))
	assert.Equal(t, TimeSlots{9, 10}, ParseTimeSlots("9,10"))
	assert.Equal(t, TimeSlots{9, 10}, ParseTimeSlots([]float64{9, 10}))
	assert.Equal(t, TimeSlots{9, 10}, ParseTimeSlots([]interface{}{float64(9), "10"}))
	assert.Empty(t, ParseTimeSlots(nil))
	assert.Empty(t, ParseTimeSlots(42), "unsupported shapes fail open to no slots")
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-06-01", NormalizeDate("2025-06-01"))
	assert.Equal(t, "2025-06-01", NormalizeDate("2025-06-01T09:30:00Z"))
	assert.Equal(t, "2025-06-01", NormalizeDate("2025-06-01 09:30:00"))
	assert.Equal(t, "not-a-date", NormalizeDate(" not-a-date "))
}

func TestValidStatusChange(t *testing.T) {
	assert.True(t, ValidStatusChange(StatusApproved))
	assert.True(t, ValidStatusChange(StatusRejected))
	assert.False(t, ValidStatusChange(StatusPending), "resetting to pending is not exposed")
	assert.False(t, ValidStatusChange("confirmed"))
}
