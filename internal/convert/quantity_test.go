package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCPUMillicores(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"250m", 250},
		{"1500m", 1500},
		{"1", 1000},
		{"4", 4000},
		{"0", 0},
		{"2.5", 2500},
		{"", 0},
		{"garbage", 0},
		{"m", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseCPUMillicores(tt.input), 0.001, "input %q", tt.input)
	}
}

func TestParseMemoryBytes(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1Ki", 1024},
		{"2Mi", 2 * 1024 * 1024},
		{"4Gi", 4 * 1024 * 1024 * 1024},
		{"1Ti", 1024 * 1024 * 1024 * 1024},
		{"1k", 1000},
		{"2M", 2_000_000},
		{"3G", 3_000_000_000},
		{"12345", 12345},
		{"", 0},
		{"not-a-number", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseMemoryBytes(tt.input), 0.001, "input %q", tt.input)
	}
}
