package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

func TestStatusCheckRequiresName(t *testing.T) {
	h := NewStatusHandler(newFakeStore())
	c, rec := jsonContext(http.MethodGet, "/v1/status?name=++", "")
	require.NoError(t, h.Check(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusCheckNewestFirstCappedAtFive(t *testing.T) {
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var seed []model.Booking
	for i := 1; i <= 7; i++ {
		seed = append(seed, model.Booking{
			ID: uint64(i), Name: "Ada", Class: "Math",
			Date:      fmt.Sprintf("2025-06-%02d", i),
			Status:    model.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	h := NewStatusHandler(newFakeStore(seed...))

	c, rec := jsonContext(http.MethodGet, "/v1/status?name=Ada", "")
	require.NoError(t, h.Check(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name     string          `json:"name"`
		Bookings []model.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.Name)
	require.Len(t, resp.Bookings, 5)
	assert.Equal(t, uint64(7), resp.Bookings[0].ID, "newest submission first")
	assert.Equal(t, uint64(3), resp.Bookings[4].ID, "oldest two fall off")
}

func TestStatusCheckExactMatchOnly(t *testing.T) {
	h := NewStatusHandler(newFakeStore(
		model.Booking{ID: 1, Name: "Ada", Status: model.StatusPending},
	))

	c, rec := jsonContext(http.MethodGet, "/v1/status?name=ada", "")
	require.NoError(t, h.Check(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["bookings"], "lookup is case-sensitive")
}
