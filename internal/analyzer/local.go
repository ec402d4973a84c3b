package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// medicalConditions is the closed set of conditions the classifier reports.
var medicalConditions = []string{
	"No Abnormalities Detected",
	"Viral Pneumonia",
	"Bacterial Pneumonia",
	"COVID-19 Indicators Present",
	"Tuberculosis Suspected",
	"Lung Opacity",
	"Pleural Effusion",
	"Infiltration",
	"Atelectasis",
	"Pneumothorax",
	"Cardiomegaly",
	"Fracture - Hairline",
	"Fracture - Compound",
	"Soft Tissue Injury",
	"Dislocation",
	"Benign Tumor",
	"Malignant Tumor Suspected (Immediate Biopsy Required)",
	"Hernia",
	"Fibrosis",
}

// LocalAnalyzer is the in-process classifier. Prediction is derived from
// a digest of the image bytes, so the same image always yields the same
// condition and confidence.
type LocalAnalyzer struct {
	log *logrus.Logger
}

func NewLocalAnalyzer(log *logrus.Logger) *LocalAnalyzer {
	return &LocalAnalyzer{log: log}
}

// Analyze classifies the image and generates a treatment plan for the
// declared patient. An empty image is an analysis error.
func (a *LocalAnalyzer) Analyze(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: empty image payload", ErrAnalysis)
	}

	condition, confidence := a.classify(input.Image)
	plan := GenerateTreatmentPlan(condition, input.Patient)

	a.log.WithFields(logrus.Fields{
		"condition":  condition,
		"confidence": confidence,
		"image_size": len(input.Image),
	}).Info("Image analysis completed")

	return &Result{
		ConditionDetected: condition,
		Confidence:        confidence,
		TreatmentPlan:     plan,
	}, nil
}

// classify picks a condition and a confidence from the image digest.
// Confidence is normalized into the 85.00-99.90 range.
func (a *LocalAnalyzer) classify(image []byte) (string, string) {
	digest := md5.Sum(image)
	seed := binary.BigEndian.Uint64(digest[:8])

	condition := medicalConditions[seed%uint64(len(medicalConditions))]

	confidence := 85.0 + float64(seed%1400)/100.0
	if confidence > 99.9 {
		confidence = 99.9
	}

	return condition, fmt.Sprintf("%.2f%%", confidence)
}
