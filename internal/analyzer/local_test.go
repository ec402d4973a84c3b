package analyzer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *LocalAnalyzer {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewLocalAnalyzer(log)
}

func TestLocalAnalyzer_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	image := []byte("fake-xray-image-bytes")

	first, err := a.Analyze(context.Background(), Input{Image: image})
	require.NoError(t, err)

	second, err := a.Analyze(context.Background(), Input{Image: image})
	require.NoError(t, err)

	assert.Equal(t, first.ConditionDetected, second.ConditionDetected)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.TreatmentPlan, second.TreatmentPlan)
}

func TestLocalAnalyzer_KnownCondition(t *testing.T) {
	a := newTestAnalyzer()

	result, err := a.Analyze(context.Background(), Input{Image: []byte("scan-001")})
	require.NoError(t, err)

	assert.Contains(t, medicalConditions, result.ConditionDetected)
	assert.NotEmpty(t, result.TreatmentPlan)
}

func TestLocalAnalyzer_ConfidenceRange(t *testing.T) {
	a := newTestAnalyzer()

	for i := 0; i < 25; i++ {
		result, err := a.Analyze(context.Background(), Input{Image: []byte("image-" + strconv.Itoa(i))})
		require.NoError(t, err)

		require.True(t, strings.HasSuffix(result.Confidence, "%"), "confidence %q has no percent suffix", result.Confidence)
		value, err := strconv.ParseFloat(strings.TrimSuffix(result.Confidence, "%"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, 85.0)
		assert.LessOrEqual(t, value, 99.9)
	}
}

func TestLocalAnalyzer_EmptyImage(t *testing.T) {
	a := newTestAnalyzer()

	_, err := a.Analyze(context.Background(), Input{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnalysis))
}

func TestLocalAnalyzer_CancelledContext(t *testing.T) {
	a := newTestAnalyzer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, Input{Image: []byte("scan")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnalysis))
}
