package app

import (
	"strconv"
	"strings"

	"bmitracker/internal/domain"
)

// ParseSubmission converts raw form text into a SubmitInput. Weight and height
// are read in the given units and converted to kg and cm. Non-numeric text
// yields a *domain.ParseError; range checks happen in SubmitMeasurement.
func ParseSubmission(name, age, gender, weight, height string, units domain.Units) (SubmitInput, error) {
	a, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return SubmitInput{}, &domain.ParseError{Field: "age", Input: age, Err: err}
	}
	w, err := parseDecimal("weight", weight)
	if err != nil {
		return SubmitInput{}, err
	}
	h, err := parseDecimal("height", height)
	if err != nil {
		return SubmitInput{}, err
	}
	wKg, hCm := units.ToMetric(w, h)
	return SubmitInput{
		Name:     strings.TrimSpace(name),
		Age:      a,
		Gender:   gender,
		WeightKg: wKg,
		HeightCm: hCm,
	}, nil
}

func parseDecimal(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &domain.ParseError{Field: field, Input: s, Err: err}
	}
	return v, nil
}
