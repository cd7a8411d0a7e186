package domain

import (
	"fmt"
	"time"
)

// Measurement is one timestamped BMI reading. It is never edited after
// creation; a changed weight or height produces a new Measurement.
type Measurement struct {
	Timestamp time.Time `json:"timestamp"`
	WeightKg  float64   `json:"weightKg"`
	HeightCm  float64   `json:"heightCm"`
	BMI       float64   `json:"bmi"`
	Category  Category  `json:"category"`
}

// NewMeasurement computes BMI and category for the given weight and height.
// The timestamp is truncated to whole seconds, the resolution of stored records.
func NewMeasurement(weightKg, heightCm float64, at time.Time) (Measurement, error) {
	bmi, cat, err := ComputeBMI(weightKg, heightCm)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		Timestamp: at.Truncate(time.Second),
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		BMI:       bmi,
		Category:  cat,
	}, nil
}

// String formats the measurement the way history listings show it.
func (m Measurement) String() string {
	return fmt.Sprintf("[%s] Weight: %.1f kg, Height: %.1f cm, BMI: %.2f (%s)",
		m.Timestamp.Format(TimestampLayout), m.WeightKg, m.HeightCm, m.BMI, m.Category)
}

// TimestampLayout is the dd/MM/yyyy HH:mm:ss layout used in stored files and reports.
const TimestampLayout = "02/01/2006 15:04:05"

// Calculator is a live editing session: a profile plus the current weight and
// height. Setters recompute the current BMI; stored history is unaffected.
type Calculator struct {
	Profile

	weightKg float64
	heightCm float64
	bmi      float64
	category Category
}

// NewCalculator validates all inputs and computes the initial BMI.
func NewCalculator(p Profile, weightKg, heightCm float64) (*Calculator, error) {
	if err := ValidateWeight(weightKg); err != nil {
		return nil, err
	}
	if err := ValidateHeight(heightCm); err != nil {
		return nil, err
	}
	c := &Calculator{Profile: p, weightKg: weightKg, heightCm: heightCm}
	c.recompute()
	return c, nil
}

func (c *Calculator) recompute() {
	bmi, cat, err := ComputeBMI(c.weightKg, c.heightCm)
	if err != nil {
		return
	}
	c.bmi, c.category = bmi, cat
}

// SetWeight updates the current weight; non-positive values are ignored.
func (c *Calculator) SetWeight(weightKg float64) {
	if weightKg > 0 {
		c.weightKg = weightKg
		c.recompute()
	}
}

// SetHeight updates the current height; non-positive values are ignored.
func (c *Calculator) SetHeight(heightCm float64) {
	if heightCm > 0 {
		c.heightCm = heightCm
		c.recompute()
	}
}

func (c *Calculator) WeightKg() float64  { return c.weightKg }
func (c *Calculator) HeightCm() float64  { return c.heightCm }
func (c *Calculator) BMI() float64       { return c.bmi }
func (c *Calculator) Category() Category { return c.category }

// Recommendation returns advice for the current category.
func (c *Calculator) Recommendation() string {
	return Recommendation(c.category)
}

// Snapshot records the current state as a new Measurement.
func (c *Calculator) Snapshot(at time.Time) Measurement {
	return Measurement{
		Timestamp: at.Truncate(time.Second),
		WeightKg:  c.weightKg,
		HeightCm:  c.heightCm,
		BMI:       c.bmi,
		Category:  c.category,
	}
}
