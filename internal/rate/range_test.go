package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin float64
		wantMax float64
	}{
		{name: "well-formed range", text: "0.7-0.9", wantMin: 0.7, wantMax: 0.9},
		{name: "single value spreads", text: "1.1", wantMin: 0.6, wantMax: 1.6},
		{name: "garbage falls back", text: "garbage", wantMin: 0.5, wantMax: 1.5},
		{name: "empty falls back", text: "", wantMin: 0.5, wantMax: 1.5},
		{name: "inverted bounds swap", text: "0.9-0.7", wantMin: 0.7, wantMax: 0.9},
		{name: "min floored", text: "0.05-0.2", wantMin: 0.1, wantMax: 0.2},
		{name: "degenerate range keeps span", text: "2-2", wantMin: 2, wantMax: 2.01},
		{name: "whitespace tolerated", text: " 0.8 - 1.2 ", wantMin: 0.8, wantMax: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ParseRange(tt.text, DefaultMin, DefaultMax)
			assert.InDelta(t, tt.wantMin, min, 1e-9)
			assert.InDelta(t, tt.wantMax, max, 1e-9)
		})
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "range averages", text: "0.75-0.85", want: 0.8},
		{name: "single value passes through", text: "1.2", want: 1.2},
		{name: "garbage is neutral", text: "bad", want: 1},
		{name: "empty is neutral", text: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Average(tt.text), 1e-9)
		})
	}
}
