package utils

import "errors"

var errBMIInput = errors.New("height and weight must be plausible positive values")

// CalculateBMI computes kg/m² from height in centimeters and weight
// in kilograms. Inputs outside human-plausible ranges are rejected.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errBMIInput
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

// BMICategory maps a BMI value onto the WHO classification bands.
func BMICategory(bmi float64) string {
	bands := []struct {
		upper float64
		label string
	}{
		{18.5, "Underweight"},
		{25.0, "Normal weight"},
		{30.0, "Overweight"},
		{35.0, "Obesity class I"},
		{40.0, "Obesity class II"},
	}
	for _, b := range bands {
		if bmi < b.upper {
			return b.label
		}
	}
	return "Obesity class III"
}
