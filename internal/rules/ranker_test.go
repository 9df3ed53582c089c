package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuitableCropsExcludesIncompatibleSoil(t *testing.T) {
	ranked := SuitableCrops("Sandy", optimalRiceConditions(), 0)

	assert.NotEmpty(t, ranked)
	for _, entry := range ranked {
		assert.NotEqual(t, "Rice", entry.Crop, "rice does not grow in sandy soil")
		assert.True(t, entry.SoilCompatible)
	}
}

func TestSuitableCropsSortedByScore(t *testing.T) {
	ranked := SuitableCrops("Loamy", optimalRiceConditions(), 0)

	assert.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].ValidationScore, ranked[i].ValidationScore)
	}
}

func TestSuitableCropsTopN(t *testing.T) {
	all := SuitableCrops("Loamy", optimalRiceConditions(), 0)
	top := SuitableCrops("Loamy", optimalRiceConditions(), 5)

	assert.Greater(t, len(all), 5)
	assert.Len(t, top, 5)
	assert.Equal(t, all[:5], top)
}

func TestSuitableCropsUnknownSoilIsEmpty(t *testing.T) {
	assert.Empty(t, SuitableCrops("Volcanic", optimalRiceConditions(), 5))
}

func TestSuitableCropsScoresMatchValidator(t *testing.T) {
	m := optimalRiceConditions()
	for _, entry := range SuitableCrops("Clayey", m, 0) {
		validation := ValidateCrop(entry.Crop, "Clayey", m)
		assert.Equal(t, *validation.ValidationScore, entry.ValidationScore, entry.Crop)
		assert.Equal(t, validation.AllPassed, entry.AllPassed, entry.Crop)
		assert.Equal(t, len(validation.Warnings), entry.WarningsCount, entry.Crop)
	}
}
