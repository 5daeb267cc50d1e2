package trading

import "testing"

func TestNewPosition(t *testing.T) {
	tests := []struct {
		name            string
		quantity        int64
		avg, current    float64
		wantValue       float64
		wantGain        float64
		wantGainPercent float64
	}{
		{"gain", 50, 150, 195, 9750, 2250, 30},
		{"loss", 20, 100, 90, 1800, -200, -10},
		{"flat", 10, 50, 50, 500, 0, 0},
		{"zero cost basis", 10, 0, 5, 50, 50, 0},
		{"zero quantity", 0, 100, 120, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPosition("AAPL", tt.quantity, tt.avg, tt.current)
			if p.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", p.Value, tt.wantValue)
			}
			if p.Gain != tt.wantGain {
				t.Errorf("Gain = %v, want %v", p.Gain, tt.wantGain)
			}
			if p.GainPercent != tt.wantGainPercent {
				t.Errorf("GainPercent = %v, want %v", p.GainPercent, tt.wantGainPercent)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{-2.675, -2.68},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
