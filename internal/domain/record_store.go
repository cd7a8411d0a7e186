package domain

import (
	"fmt"
	"math"
	"time"
)

// RecordStore is the ordered measurement history of a single user.
// Insertion order is chronological order.
type RecordStore struct {
	Name    string
	records []Measurement
}

// NewRecordStore returns an empty store for the named user.
func NewRecordStore(name string) *RecordStore {
	return &RecordStore{Name: name}
}

// Append records a measurement stamped with the current time.
func (s *RecordStore) Append(weightKg, heightCm, bmi float64, category Category) Measurement {
	m := Measurement{
		Timestamp: time.Now().Truncate(time.Second),
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		BMI:       bmi,
		Category:  category,
	}
	s.records = append(s.records, m)
	return m
}

// AppendMeasurement adds an existing measurement at the end.
func (s *RecordStore) AppendMeasurement(m Measurement) {
	s.records = append(s.records, m)
}

// All returns a copy of every measurement, oldest first.
func (s *RecordStore) All() []Measurement {
	out := make([]Measurement, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the most recently appended measurement.
func (s *RecordStore) Latest() (Measurement, bool) {
	if len(s.records) == 0 {
		return Measurement{}, false
	}
	return s.records[len(s.records)-1], true
}

func (s *RecordStore) Count() int {
	return len(s.records)
}

func (s *RecordStore) Clear() {
	s.records = nil
}

// Statistics summarises the store; false when it is empty.
func (s *RecordStore) Statistics() (Statistics, bool) {
	return ComputeStatistics(s.records)
}

// Statistics is derived from a user's measurements and never stored.
type Statistics struct {
	TotalRecords int     `json:"totalRecords"`
	AvgBMI       float64 `json:"avgBmi"`
	MinBMI       float64 `json:"minBmi"`
	MaxBMI       float64 `json:"maxBmi"`
	MinWeight    float64 `json:"minWeight"`
	MaxWeight    float64 `json:"maxWeight"`
}

func (s Statistics) String() string {
	return fmt.Sprintf("Total Records: %d\nAverage BMI: %.2f\nBMI Range: %.2f - %.2f\nWeight Range: %.1f - %.1f kg",
		s.TotalRecords, s.AvgBMI, s.MinBMI, s.MaxBMI, s.MinWeight, s.MaxWeight)
}

// ComputeStatistics makes a single pass over records. It returns false for an
// empty slice.
func ComputeStatistics(records []Measurement) (Statistics, bool) {
	if len(records) == 0 {
		return Statistics{}, false
	}
	st := Statistics{
		MinBMI:    math.Inf(1),
		MaxBMI:    math.Inf(-1),
		MinWeight: math.Inf(1),
		MaxWeight: math.Inf(-1),
	}
	var total float64
	for _, r := range records {
		total += r.BMI
		st.MinBMI = math.Min(st.MinBMI, r.BMI)
		st.MaxBMI = math.Max(st.MaxBMI, r.BMI)
		st.MinWeight = math.Min(st.MinWeight, r.WeightKg)
		st.MaxWeight = math.Max(st.MaxWeight, r.WeightKg)
	}
	st.TotalRecords = len(records)
	st.AvgBMI = total / float64(len(records))
	return st, true
}
