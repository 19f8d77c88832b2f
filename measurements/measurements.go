// Package measurements is the typed client for the body-measurement
// routes, plus the BMI computation used by the calculator.
package measurements

import "time"

// Measurement is a body measurement snapshot for a single date.
type Measurement struct {
	ID              string             `json:"id,omitempty"`
	UserID          string             `json:"userId,omitempty"`
	MeasurementDate string             `json:"measurementDate" validate:"required"`
	Weight          *float64           `json:"weight,omitempty"`
	Height          *float64           `json:"height,omitempty"`
	BodyFat         *float64           `json:"bodyFat,omitempty"`
	MuscleMass      *float64           `json:"muscleMass,omitempty"`
	BMI             *float64           `json:"bmi,omitempty"`
	Measurements    map[string]float64 `json:"measurements,omitempty"`
	PhotoURL        string             `json:"photoUrl,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       *time.Time         `json:"createdAt,omitempty"`
}

// Latest returns the measurement with the most recent date. Dates use
// the backend's YYYY-MM-DD form, so ordering is lexicographic.
func Latest(list []Measurement) (Measurement, bool) {
	if len(list) == 0 {
		return Measurement{}, false
	}

	latest := list[0]
	for _, m := range list[1:] {
		if m.MeasurementDate > latest.MeasurementDate {
			latest = m
		}
	}
	return latest, true
}
