package domain

import "fmt"

const (
	kgToLb = 2.2046226218
	inToCm = 2.54
)

// Units selects how weight and height are entered and displayed.
type Units string

const (
	Metric   Units = "metric"   // kg, cm
	Imperial Units = "imperial" // lb, in
)

// ParseUnits accepts "metric" or "imperial"; empty means metric.
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("units must be %q or %q", Metric, Imperial)
}

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// ConvertHeight converts a height value between "cm" and "in".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertHeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "cm" && to == "in" {
		return v / inToCm
	}
	if from == "in" && to == "cm" {
		return v * inToCm
	}
	return v
}

// ToMetric converts weight and height entered in u to kg and cm.
func (u Units) ToMetric(weight, height float64) (weightKg, heightCm float64) {
	if u == Imperial {
		return ConvertWeight(weight, "lb", "kg"), ConvertHeight(height, "in", "cm")
	}
	return weight, height
}
