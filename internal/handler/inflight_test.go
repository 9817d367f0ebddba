package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflightSet(t *testing.T) {
	s := newInflightSet()

	assert.True(t, s.Begin(5))
	assert.False(t, s.Begin(5), "second claim on the same id is refused")
	assert.True(t, s.Begin(7), "other ids are unaffected")
	assert.Equal(t, []uint64{5, 7}, s.Active())

	s.End(5)
	assert.Equal(t, []uint64{7}, s.Active())
	assert.True(t, s.Begin(5), "released ids can be claimed again")
}
