package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSymptoms_NonSpecific(t *testing.T) {
	advice := CheckSymptoms("my left ear feels odd")

	assert.Contains(t, advice, "Symptoms are non-specific")
	assert.Contains(t, advice, "Monitor for 24 hours")
}

func TestCheckSymptoms_SingleMatch(t *testing.T) {
	advice := CheckSymptoms("I have a bad headache since yesterday")

	assert.Contains(t, advice, "Headache")
	assert.Contains(t, advice, "Tension Headache or Migraine")
	assert.Contains(t, advice, "Rest in a dark room")
	assert.NotContains(t, advice, "Emergency Room")
}

func TestCheckSymptoms_CriticalEscalation(t *testing.T) {
	advice := CheckSymptoms("chest pain and fever")

	assert.Contains(t, advice, "Potential Cardiac or Pulmonary Issue")
	assert.Contains(t, advice, "URGENT")
	assert.Contains(t, advice, "Emergency Room")
}

func TestCheckSymptoms_Deterministic(t *testing.T) {
	input := "fever, cough and fatigue"
	assert.Equal(t, CheckSymptoms(input), CheckSymptoms(input))
}
