package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"staffgap/pkg/contracts/domain"
)

func TestMelt(t *testing.T) {
	weeks := []domain.WeekColumn{
		{Index: 0, Date: date(2025, 3, 3), Valid: true},
		{Index: 1},
		{Index: 2, Date: date(2025, 3, 17), Valid: true},
	}
	body := [][]string{
		{"R", " Jane Doe ", "", "", "", "8", "999", "abc"},
		{"R", "", "", "", "", "40", "40", "40"},
		{"R", "Short Row", "", "", "", "4"},
	}

	got := Melt(body, weeks)

	assert.Equal(t, []domain.LongRecord{
		{ResourceName: "Jane Doe", Week: date(2025, 3, 3), Hours: 8},
		{ResourceName: "Jane Doe", Week: date(2025, 3, 17), Hours: 0},
		{ResourceName: "Short Row", Week: date(2025, 3, 3), Hours: 4},
		{ResourceName: "Short Row", Week: date(2025, 3, 17), Hours: 0},
	}, got)
}

func TestMeltNoValidWeeks(t *testing.T) {
	got := Melt([][]string{{"R", "Jane", "", "", "", "8"}}, []domain.WeekColumn{{Index: 0}})
	assert.Empty(t, got)
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"16", 16},
		{" 7.5 ", 7.5},
		{"", 0},
		{"n/a", 0},
		{"1,200", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-inf", 0},
		{"-4", -4},
		{"1e1", 10},
	}
	for _, tt := range tests {
		got := ParseHours(tt.in)
		assert.False(t, math.IsNaN(got))
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
