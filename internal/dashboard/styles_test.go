package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricColor(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		expect  string // Color name for readability
	}{
		{"healthy zero", 0.0, "healthy"},
		{"healthy near threshold", 49.9, "healthy"},
		{"warning at threshold", 50.0, "warning"},
		{"warning mid", 65.0, "warning"},
		{"warning at upper bound", 80.0, "warning"},
		{"critical just above", 80.1, "critical"},
		{"critical high", 95.0, "critical"},
		{"critical max", 100.0, "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MetricColor(tt.percent)
			switch tt.expect {
			case "healthy":
				assert.Equal(t, ColorHealthy, result)
			case "warning":
				assert.Equal(t, ColorWarning, result)
			case "critical":
				assert.Equal(t, ColorCritical, result)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		filled  int
		empty   int
	}{
		{"empty", 10, 0, 0, 10},
		{"half", 10, 50, 5, 5},
		{"full", 10, 100, 10, 0},
		{"over full clamps", 10, 150, 10, 0},
		{"negative clamps", 10, -5, 0, 10},
		{"zero width floors to one", 0, 100, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ProgressBar(tt.width, tt.percent)
			assert.Equal(t, tt.filled, strings.Count(result, "█"))
			assert.Equal(t, tt.empty, strings.Count(result, "░"))
		})
	}
}
