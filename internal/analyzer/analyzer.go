package analyzer

import (
	"context"
	"errors"
)

// ErrAnalysis is returned when the analyzer is unavailable or errored.
// The consultation pipeline maps it to a Failed request.
var ErrAnalysis = errors.New("image analysis failed")

// PatientContext carries the declared patient attributes the analyzer
// uses to tailor the treatment plan. Zero values fall back to defaults.
type PatientContext struct {
	Name      string
	Age       int
	Weight    float64
	Allergies string
}

// Input is one analysis request.
type Input struct {
	Image   []byte
	Patient PatientContext
}

// Result is the structured report produced by the analyzer. The pipeline
// passes these fields through to the consultation report unmodified.
type Result struct {
	ConditionDetected string
	Confidence        string
	TreatmentPlan     string
}

// Analyzer turns an uploaded clinical image into a diagnostic report.
// Implementations may be arbitrarily slow; they must honor ctx.
type Analyzer interface {
	Analyze(ctx context.Context, input Input) (*Result, error)
}
