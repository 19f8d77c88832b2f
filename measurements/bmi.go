package measurements

import (
	"math"

	"github.com/pkg/errors"
)

// UnitSystem selects the inputs the BMI calculation expects.
type UnitSystem string

const (
	// UnitMetric takes weight in kilograms and height in centimeters.
	UnitMetric UnitSystem = "metric"
	// UnitImperial takes weight in pounds and height in inches.
	UnitImperial UnitSystem = "imperial"
)

// BMICategory is a named BMI range.
type BMICategory string

const (
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal Weight"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"
)

// BMIResult is a computed BMI with its interpretation.
type BMIResult struct {
	BMI             float64
	Category        BMICategory
	HealthStatus    string
	Recommendations []string
}

// CalculateBMI computes the body mass index for the given unit system,
// rounded to one decimal place.
func CalculateBMI(weight, height float64, unit UnitSystem) (*BMIResult, error) {
	if weight <= 0 || height <= 0 {
		return nil, errors.New("[CalculateBMI] weight and height must be positive")
	}

	var bmi float64
	switch unit {
	case UnitMetric:
		// weight (kg) / height (m) squared
		meters := height / 100
		bmi = weight / (meters * meters)
	case UnitImperial:
		// weight (lbs) / height (in) squared, times 703
		bmi = weight / (height * height) * 703
	default:
		return nil, errors.Errorf("[CalculateBMI] unknown unit system %q", unit)
	}

	bmi = math.Round(bmi*10) / 10

	result := &BMIResult{BMI: bmi}
	switch {
	case bmi < 18.5:
		result.Category = CategoryUnderweight
		result.HealthStatus = "You may need to gain weight"
		result.Recommendations = []string{
			"Increase your calorie intake with nutrient-rich foods",
			"Include more protein in your diet",
			"Consider strength training exercises",
			"Consult a nutritionist for a personalized plan",
		}
	case bmi < 25:
		result.Category = CategoryNormal
		result.HealthStatus = "You are at a healthy weight"
		result.Recommendations = []string{
			"Maintain your current healthy lifestyle",
			"Continue regular physical activity",
			"Eat a balanced diet",
			"Stay hydrated and get enough sleep",
		}
	case bmi < 30:
		result.Category = CategoryOverweight
		result.HealthStatus = "You may benefit from losing weight"
		result.Recommendations = []string{
			"Increase physical activity to 150+ minutes per week",
			"Focus on portion control",
			"Choose whole foods over processed foods",
			"Consider consulting a healthcare provider",
		}
	default:
		result.Category = CategoryObese
		result.HealthStatus = "Consult a healthcare provider"
		result.Recommendations = []string{
			"Seek professional medical advice",
			"Create a structured weight loss plan",
			"Start with low-impact exercises",
			"Monitor your progress regularly",
			"Consider joining a support group",
		}
	}
	return result, nil
}
