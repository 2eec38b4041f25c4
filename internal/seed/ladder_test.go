package seed

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestReceiptStatusLadder_Boundaries(t *testing.T) {
	tests := []struct {
		draw float64
		want string
	}{
		{0, ReceiptCompleted},
		{0.5, ReceiptCompleted},
		{0.7999, ReceiptCompleted},
		{0.80, ReceiptPending},
		{0.9499, ReceiptPending},
		{0.95, ReceiptCanceled},
		{0.9999, ReceiptCanceled},
		{1.0, ReceiptCanceled},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, receiptStatusLadder.Pick(tt.draw), "draw %v", tt.draw)
	}
}

func TestLadder_Generic(t *testing.T) {
	l := Ladder[int]{{Value: 1, Cumulative: 0.25}, {Value: 2, Cumulative: 0.5}, {Value: 3, Cumulative: 0.75}}

	assert.Equal(t, 1, l.Pick(0.1))
	assert.Equal(t, 2, l.Pick(0.25))
	assert.Equal(t, 3, l.Pick(0.74))
	// past every threshold falls through to the last outcome
	assert.Equal(t, 3, l.Pick(0.9))
}

func TestLadder_PickFromScriptedSource(t *testing.T) {
	src := &fixedSource{floats: []float64{0.81, 0.2, 0.97}}
	assert.Equal(t, ReceiptPending, receiptStatusLadder.PickFrom(src))
	assert.Equal(t, ReceiptCompleted, receiptStatusLadder.PickFrom(src))
	assert.Equal(t, ReceiptCanceled, receiptStatusLadder.PickFrom(src))
}

func TestReceiptStatusLadder_Distribution(t *testing.T) {
	src := gofakeit.New(2024)
	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[receiptStatusLadder.PickFrom(src)]++
	}

	assert.InDelta(t, 0.80, float64(counts[ReceiptCompleted])/n, 0.02)
	assert.InDelta(t, 0.15, float64(counts[ReceiptPending])/n, 0.02)
	assert.InDelta(t, 0.05, float64(counts[ReceiptCanceled])/n, 0.02)
}
