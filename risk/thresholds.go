/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Signal names reported when a threshold is exceeded.
const (
	SignalGlucose = "glucose"
	SignalInsulin = "insulin"
	SignalBMI     = "bmi"
	SignalAge     = "age"
)

// Signal describes one threshold of the rule.
type Signal struct {
	Name  string
	Limit float64
	Unit  string
}

// Thresholds are the limits above which the rule reports High Risk.
type Thresholds struct {
	Glucose float64 `yaml:"glucose"`
	Insulin float64 `yaml:"insulin"`
	BMI     float64 `yaml:"bmi"`
	Age     float64 `yaml:"age"`
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Glucose: 125,
		Insulin: 100,
		BMI:     30,
		Age:     50,
	}
}

// Signals returns the table of signals in evaluation order.
func (t Thresholds) Signals() []Signal {
	return []Signal{
		{Name: SignalGlucose, Limit: t.Glucose, Unit: "mg/dL"},
		{Name: SignalInsulin, Limit: t.Insulin, Unit: "μU/mL"},
		{Name: SignalBMI, Limit: t.BMI, Unit: "kg/m²"},
		{Name: SignalAge, Limit: t.Age, Unit: "years"},
	}
}

// Evaluate returns the names of all signals strictly above their limit.
// Insulin only counts when it was supplied.
func (t Thresholds) Evaluate(in Input) []string {
	var fired []string

	if in.BloodGlucose > t.Glucose {
		fired = append(fired, SignalGlucose)
	}

	if in.Insulin != nil && *in.Insulin > t.Insulin {
		fired = append(fired, SignalInsulin)
	}

	if in.BMI > t.BMI {
		fired = append(fired, SignalBMI)
	}

	if float64(in.Age) > t.Age {
		fired = append(fired, SignalAge)
	}

	return fired
}

// Validate checks that every limit is positive.
func (t Thresholds) Validate() error {
	for _, s := range t.Signals() {
		if s.Limit <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidThresholds, s.Name, s.Limit)
		}
	}

	return nil
}

// thresholdsFile mirrors Thresholds with optional fields so that a file only
// needs to list the limits it overrides.
type thresholdsFile struct {
	Glucose *float64 `yaml:"glucose"`
	Insulin *float64 `yaml:"insulin"`
	BMI     *float64 `yaml:"bmi"`
	Age     *float64 `yaml:"age"`
}

// ParseThresholds reads YAML overrides on top of the defaults.
func ParseThresholds(data []byte) (Thresholds, error) {
	t := DefaultThresholds()

	var file thresholdsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return t, fmt.Errorf("%w: %w", ErrInvalidThresholds, err)
	}

	if file.Glucose != nil {
		t.Glucose = *file.Glucose
	}

	if file.Insulin != nil {
		t.Insulin = *file.Insulin
	}

	if file.BMI != nil {
		t.BMI = *file.BMI
	}

	if file.Age != nil {
		t.Age = *file.Age
	}

	if err := t.Validate(); err != nil {
		return DefaultThresholds(), err
	}

	return t, nil
}

// LoadThresholds reads a YAML thresholds file. An empty path yields the
// defaults.
func LoadThresholds(path string) (Thresholds, error) {
	if path == "" {
		return DefaultThresholds(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultThresholds(), fmt.Errorf("failed to read thresholds file: %w", err)
	}

	return ParseThresholds(data)
}
