package energy

import "testing"

func TestEstimateMonthlyCost(t *testing.T) {
	tests := []struct {
		name        string
		watts       float64
		hoursPerDay float64
		rate        float64
		want        float64
	}{
		{"fridge at default rate", 150, 24, DefaultRatePerKWh, 14.04},
		{"zero usage", 1000, 0, DefaultRatePerKWh, 0},
		{"rounding to cents", 60, 5.5, 0.13, 1.29}, // 9.9 kWh * 0.13 = 1.287
		{"higher tariff", 150, 24, 0.30, 32.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateMonthlyCost(tt.watts, tt.hoursPerDay, tt.rate)
			if got != tt.want {
				t.Errorf("EstimateMonthlyCost(%v, %v, %v) = %v, want %v",
					tt.watts, tt.hoursPerDay, tt.rate, got, tt.want)
			}
		})
	}
}
