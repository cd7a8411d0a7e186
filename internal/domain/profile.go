// Package domain contains the core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Input bounds shared by validation and the profile setters.
const (
	MinAge      = 1
	MaxAge      = 150
	MaxWeightKg = 500.0
	MaxHeightCm = 300.0
)

// FieldSeparator delimits fields in the stored line format. Names, genders and
// category labels must never contain it.
const FieldSeparator = "|"

// Profile holds a user's identity attributes. Name is the storage key and is
// matched exactly (no case folding or trimming of stored values).
type Profile struct {
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProfile validates and builds a Profile. CreatedAt is left zero; the
// repository assigns it on first save.
func NewProfile(name string, age int, gender string) (Profile, error) {
	if err := ValidateName(name); err != nil {
		return Profile{}, err
	}
	if err := ValidateAge(age); err != nil {
		return Profile{}, err
	}
	if err := ValidateGender(gender); err != nil {
		return Profile{}, err
	}
	return Profile{Name: name, Age: age, Gender: gender}, nil
}

func (p Profile) String() string {
	return fmt.Sprintf("Name: %s, Age: %d, Gender: %s", p.Name, p.Age, p.Gender)
}

// SetName updates the name; empty or unstorable names are ignored.
func (p *Profile) SetName(name string) {
	if ValidateName(name) == nil {
		p.Name = name
	}
}

// SetAge updates the age; values outside 1..150 are ignored.
func (p *Profile) SetAge(age int) {
	if ValidateAge(age) == nil {
		p.Age = age
	}
}

// SetGender updates the gender; unstorable values are ignored.
func (p *Profile) SetGender(gender string) {
	if ValidateGender(gender) == nil {
		p.Gender = gender
	}
}

// ValidateName requires a non-blank name that can be stored as a registry key
// and as part of a file name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "Please enter your name"}
	}
	if strings.ContainsAny(name, FieldSeparator+"\r\n") {
		return &ValidationError{Field: "name", Message: "Name must not contain '|' or line breaks"}
	}
	if strings.ContainsAny(name, `/\`) {
		return &ValidationError{Field: "name", Message: "Name must not contain path separators"}
	}
	return nil
}

// ValidateAge requires 1..150 inclusive.
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &ValidationError{Field: "age", Message: "Please enter valid age (1-150)"}
	}
	return nil
}

// ValidateGender accepts free text that fits the line format.
func ValidateGender(gender string) error {
	if strings.ContainsAny(gender, FieldSeparator+"\r\n") {
		return &ValidationError{Field: "gender", Message: "Gender must not contain '|' or line breaks"}
	}
	return nil
}

// ValidateWeight requires (0, 500] kg.
func ValidateWeight(weightKg float64) error {
	if !(weightKg > 0 && weightKg <= MaxWeightKg) {
		return &ValidationError{Field: "weight", Message: "Please enter valid weight (0-500 kg)"}
	}
	return nil
}

// ValidateHeight requires (0, 300] cm.
func ValidateHeight(heightCm float64) error {
	if !(heightCm > 0 && heightCm <= MaxHeightCm) {
		return &ValidationError{Field: "height", Message: "Please enter valid height (0-300 cm)"}
	}
	return nil
}
