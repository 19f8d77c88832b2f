package measurements_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fittrack/go-fitness-client/measurements"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name         string
		weight       float64
		height       float64
		unit         measurements.UnitSystem
		wantBMI      float64
		wantCategory measurements.BMICategory
	}{
		{
			name:   "metric normal weight",
			weight: 70, height: 175, unit: measurements.UnitMetric,
			wantBMI: 22.9, wantCategory: measurements.CategoryNormal,
		},
		{
			name:   "metric underweight",
			weight: 50, height: 175, unit: measurements.UnitMetric,
			wantBMI: 16.3, wantCategory: measurements.CategoryUnderweight,
		},
		{
			name:   "metric overweight",
			weight: 85, height: 175, unit: measurements.UnitMetric,
			wantBMI: 27.8, wantCategory: measurements.CategoryOverweight,
		},
		{
			name:   "metric obese",
			weight: 110, height: 175, unit: measurements.UnitMetric,
			wantBMI: 35.9, wantCategory: measurements.CategoryObese,
		},
		{
			name:   "imperial normal weight",
			weight: 154, height: 69, unit: measurements.UnitImperial,
			wantBMI: 22.7, wantCategory: measurements.CategoryNormal,
		},
		{
			name:   "boundary 18.5 is normal",
			weight: 18.5 * 1.75 * 1.75, height: 175, unit: measurements.UnitMetric,
			wantBMI: 18.5, wantCategory: measurements.CategoryNormal,
		},
		{
			name:   "boundary 30 is obese",
			weight: 30 * 1.75 * 1.75, height: 175, unit: measurements.UnitMetric,
			wantBMI: 30.0, wantCategory: measurements.CategoryObese,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := measurements.CalculateBMI(tc.weight, tc.height, tc.unit)
			require.NoError(t, err)
			require.InDelta(t, tc.wantBMI, result.BMI, 0.001)
			require.Equal(t, tc.wantCategory, result.Category)
			require.NotEmpty(t, result.HealthStatus)
			require.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestLatest(t *testing.T) {
	_, ok := measurements.Latest(nil)
	require.False(t, ok)

	latest, ok := measurements.Latest([]measurements.Measurement{
		{ID: "m1", MeasurementDate: "2026-08-01"},
		{ID: "m3", MeasurementDate: "2026-08-20"},
		{ID: "m2", MeasurementDate: "2026-08-10"},
	})
	require.True(t, ok)
	require.Equal(t, "m3", latest.ID)
}

func TestCalculateBMIRejectsBadInput(t *testing.T) {
	_, err := measurements.CalculateBMI(0, 175, measurements.UnitMetric)
	require.Error(t, err)

	_, err = measurements.CalculateBMI(70, 0, measurements.UnitMetric)
	require.Error(t, err)

	_, err = measurements.CalculateBMI(70, 175, "furlongs")
	require.Error(t, err)
}
