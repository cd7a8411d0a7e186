package domain

import (
	"errors"
	"fmt"
	"math"
)

// Category is a BMI health classification. Values are ordered by ascending BMI.
type Category int

const (
	Underweight Category = iota
	NormalWeight
	Overweight
	Obese
)

// Category boundaries. Each boundary belongs to the higher category.
const (
	normalWeightFrom = 18.5
	overweightFrom   = 25.0
	obeseFrom        = 30.0
)

var categoryLabels = map[Category]string{
	Underweight:  "Underweight",
	NormalWeight: "Normal weight",
	Overweight:   "Overweight",
	Obese:        "Obese",
}

var recommendations = map[Category]string{
	Underweight:  "Consider increasing caloric intake and consult a nutritionist.",
	NormalWeight: "Maintain your current healthy lifestyle!",
	Overweight:   "Consider regular exercise and a balanced diet.",
	Obese:        "Consult a healthcare professional for personalized advice.",
}

// FallbackRecommendation is returned for a category outside the known set.
const FallbackRecommendation = "Please check your input values."

// ErrNonPositiveHeight is returned by ComputeBMI when height would divide by zero.
var ErrNonPositiveHeight = errors.New("height must be > 0")

// AllCategories lists every category in ascending BMI order.
var AllCategories = []Category{Underweight, NormalWeight, Overweight, Obese}

// String returns the display label that is also used in stored records.
func (c Category) String() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Unknown"
}

// ParseCategory maps a stored label back to its Category.
func ParseCategory(label string) (Category, bool) {
	for c, l := range categoryLabels {
		if l == label {
			return c, true
		}
	}
	return 0, false
}

// Classify maps an unrounded BMI value to its category.
func Classify(bmi float64) Category {
	switch {
	case bmi < normalWeightFrom:
		return Underweight
	case bmi < overweightFrom:
		return NormalWeight
	case bmi < obeseFrom:
		return Overweight
	default:
		return Obese
	}
}

// RawBMI returns weight / (height in meters)^2 without rounding.
func RawBMI(weightKg, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, ErrNonPositiveHeight
	}
	m := heightCm / 100.0
	return weightKg / (m * m), nil
}

// RoundBMI rounds to two decimals, half away from zero.
func RoundBMI(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBMI returns the reported (rounded) BMI and the category derived from
// the unrounded value. Callers validate the weight and height bounds first.
func ComputeBMI(weightKg, heightCm float64) (float64, Category, error) {
	raw, err := RawBMI(weightKg, heightCm)
	if err != nil {
		return 0, 0, err
	}
	return RoundBMI(raw), Classify(raw), nil
}

// Recommendation returns the health advice for a category.
func Recommendation(c Category) string {
	if r, ok := recommendations[c]; ok {
		return r
	}
	return FallbackRecommendation
}

// MarshalText encodes the category as its label.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category label.
func (c *Category) UnmarshalText(b []byte) error {
	v, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", string(b))
	}
	*c = v
	return nil
}
