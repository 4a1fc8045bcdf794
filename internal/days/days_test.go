package days

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"## Monday", "Monday", true},
		{"**THURSDAY — Upper Pull**", "Thursday", true},
		{"=== Day 3 ===", "Day 3", true},
		{"Saturday:", "Saturday", true},
		{"Friday (deload)", "Friday", true},
		{"Mondays are for squats and we go heavy every single week no matter what", "", false},
		{"Monday 4 x 10 @ 20 kg", "", false},
		{"A1. Back Squat", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := Match(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameAndIndex(t *testing.T) {
	assert.True(t, Same("thursday", "Thursday"))
	assert.True(t, Same("day  2", "Day 2"))
	assert.False(t, Same("Monday", "Tuesday"))

	assert.Less(t, Index("Monday"), Index("Sunday"))
	assert.Less(t, Index("Sunday"), Index("Day 1"))
	assert.Less(t, Index("Day 2"), Index("Day 10"))
	assert.Equal(t, 1000, Index("Leg Day"))
}
