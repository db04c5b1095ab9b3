package sequence_test

import (
	"hostel/shared/sequence"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		expected string
	}{
		{name: "gap in existing ids", prefix: "C", existing: []string{"C1", "C3", "C7"}, expected: "C8"},
		{name: "no existing ids", prefix: "C", existing: nil, expected: "C1"},
		{name: "malformed ids are ignored", prefix: "C", existing: []string{"C2", "Cx", "C", "C-9", "X99", "c40"}, expected: "C3"},
		{name: "bed ids ignore bed numbers", prefix: "B", existing: []string{"B4", "BN12", "BK30"}, expected: "B5"},
		{name: "bed numbers ignore bed ids", prefix: "BN", existing: []string{"B4", "BN12"}, expected: "BN13"},
		{name: "numeric not lexical ordering", prefix: "BK", existing: []string{"BK9", "BK10", "BK2"}, expected: "BK11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sequence.NextID(tt.prefix, tt.existing))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, sequence.Matches("R", "R101"))
	assert.False(t, sequence.Matches("R", "R"))
	assert.False(t, sequence.Matches("R", "RX1"))
	assert.False(t, sequence.Matches("", "1"))
	assert.False(t, sequence.Matches("PY", "PY1 "))
	assert.False(t, sequence.Matches("B", "BN12"))
	assert.False(t, sequence.Matches("BK", "BK-1"))
	assert.True(t, sequence.Matches("BK", "BK007"))
}

func BenchmarkMatches(b *testing.B) {
	for b.Loop() {
		sequence.Matches("BK", "BK1024")
	}
}

func TestMax(t *testing.T) {
	assert.Equal(t, int64(0), sequence.Max("N", []string{"M1", "N"}))
	assert.Equal(t, int64(42), sequence.Max("N", []string{"N41", "N42", "N7"}))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "PY12", sequence.Format("PY", 12))
}

func TestSuffix(t *testing.T) {
	value, ok := sequence.Suffix("BN", "BN12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), value)

	_, ok = sequence.Suffix("B", "BN12")
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	ids := []string{"BN10", "odd", "BN2", "BN1"}
	slices.SortFunc(ids, func(a, b string) int { return sequence.Compare("BN", a, b) })

	assert.Equal(t, []string{"BN1", "BN2", "BN10", "odd"}, ids)
}
