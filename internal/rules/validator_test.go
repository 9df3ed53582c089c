package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// optimalRiceConditions returns readings that satisfy every rice check.
func optimalRiceConditions() Measurement {
	return Measurement{
		Nitrogen:    90,
		Phosphorus:  45,
		Potassium:   50,
		Temperature: 25,
		Humidity:    80,
		PH:          6.0,
		Rainfall:    200,
	}
}

func TestNutrientLevelFor(t *testing.T) {
	assert.Equal(t, NutrientLow, NutrientLevelFor(39.9, "N"))
	assert.Equal(t, NutrientModerate, NutrientLevelFor(40, "N"))
	assert.Equal(t, NutrientModerate, NutrientLevelFor(80, "N"))
	assert.Equal(t, NutrientHigh, NutrientLevelFor(80.1, "N"))

	assert.Equal(t, NutrientLow, NutrientLevelFor(29, "P"))
	assert.Equal(t, NutrientModerate, NutrientLevelFor(45, "P"))
	assert.Equal(t, NutrientHigh, NutrientLevelFor(61, "P"))

	assert.Equal(t, NutrientLow, NutrientLevelFor(39, "K"))
	assert.Equal(t, NutrientModerate, NutrientLevelFor(55, "K"))
	assert.Equal(t, NutrientHigh, NutrientLevelFor(71, "K"))

	// Unknown nutrients fall back to potassium thresholds
	assert.Equal(t, NutrientModerate, NutrientLevelFor(55, "X"))
}

func TestCheckPHTiers(t *testing.T) {
	rule, ok := RuleFor("rice")
	assert.True(t, ok)

	optimal := CheckPH(6.0, rule)
	assert.True(t, optimal.Passed)
	assert.True(t, optimal.Optimal)
	assert.Contains(t, optimal.Message, "optimal")

	acceptable := CheckPH(7.5, rule)
	assert.True(t, acceptable.Passed)
	assert.False(t, acceptable.Optimal)
	assert.Contains(t, acceptable.Message, "acceptable but not optimal")

	failed := CheckPH(4.0, rule)
	assert.False(t, failed.Passed)
	assert.Contains(t, failed.Message, "outside acceptable range")
}

func TestCheckHumidityDerivedBand(t *testing.T) {
	rule, _ := RuleFor("rice")

	// Rice spans 70-100%, so the optimal band is 85 +/- 9.
	assert.True(t, CheckHumidity(76, rule).Optimal)
	assert.True(t, CheckHumidity(94, rule).Optimal)

	edge := CheckHumidity(95, rule)
	assert.True(t, edge.Passed)
	assert.False(t, edge.Optimal)

	low := CheckHumidity(60, rule)
	assert.False(t, low.Passed)
	assert.Contains(t, low.Message, "outside acceptable range")
}

func TestCheckSoilTypeTiers(t *testing.T) {
	rule, _ := RuleFor("rice")

	preferred := CheckSoilType("Clayey", rule)
	assert.True(t, preferred.Passed)
	assert.True(t, preferred.Preferred)

	acceptable := CheckSoilType("Black Cotton", rule)
	assert.True(t, acceptable.Passed)
	assert.False(t, acceptable.Preferred)
	assert.Contains(t, acceptable.Message, "preferred:")

	rejected := CheckSoilType("Sandy", rule)
	assert.False(t, rejected.Passed)
	assert.Contains(t, rejected.Message, "not recommended")
}

func TestCheckNutrientsShortfallAndExcess(t *testing.T) {
	rice, _ := RuleFor("rice")

	// Rice demands high nitrogen; a moderate reading is a shortfall.
	check, shortfalls := CheckNutrients(60, 45, 50, rice)
	assert.False(t, check.Passed)
	assert.Len(t, check.Details, 3)
	assert.Len(t, shortfalls, 1)
	assert.Contains(t, shortfalls[0], "needs HIGH nitrogen")

	// Chickpea fixes its own nitrogen; excess is noted but not a failure.
	chickpea, _ := RuleFor("chickpea")
	check, shortfalls = CheckNutrients(100, 45, 50, chickpea)
	assert.True(t, check.Passed)
	assert.Empty(t, shortfalls)
	assert.Contains(t, check.Details[0], "excess nitrogen")
}

func TestValidateCropAllOptimal(t *testing.T) {
	result := ValidateCrop("rice", "Clayey", optimalRiceConditions())

	assert.True(t, result.HasRules)
	assert.True(t, result.AllPassed)
	assert.NotNil(t, result.ValidationScore)
	assert.Equal(t, 100.0, *result.ValidationScore)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "Paddy crop requiring flooded conditions and high water availability",
		result.CropDescription)

	assert.True(t, result.Validations.PH.Optimal)
	assert.True(t, result.Validations.SoilType.Preferred)
	assert.True(t, result.Validations.Rainfall.Optimal)
	assert.True(t, result.Validations.Temperature.Optimal)
	assert.True(t, result.Validations.Humidity.Optimal)
	assert.True(t, result.Validations.Nutrients.Passed)
}

func TestValidateCropSoilMismatch(t *testing.T) {
	result := ValidateCrop("rice", "Sandy", optimalRiceConditions())

	assert.True(t, result.HasRules)
	assert.False(t, result.AllPassed)
	// Five optimal checks plus a failed soil check: (5*1.0 + 0.0) / 6.
	assert.InDelta(t, 83.3, *result.ValidationScore, 0.01)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Sandy soil is not suitable for rice")
}

func TestValidateCropAcceptableTiersSuggest(t *testing.T) {
	m := optimalRiceConditions()
	m.PH = 7.5 // acceptable but not optimal for rice

	result := ValidateCrop("rice", "Black Cotton", m)

	assert.True(t, result.AllPassed)
	// pH 0.7, soil 0.7, rest 1.0.
	assert.InDelta(t, 90.0, *result.ValidationScore, 0.01)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.Suggestions[0], "Adjust pH to 5.5-6.5")
	assert.Contains(t, result.Suggestions[1], "Consider Clayey, Loamy, Riverine Alluvial, Coastal Alluvial soil")
}

func TestValidateCropWithoutRules(t *testing.T) {
	result := ValidateCrop("durian", "Loamy", optimalRiceConditions())

	assert.False(t, result.HasRules)
	assert.Nil(t, result.ValidationScore)
	assert.Equal(t, "No validation rules available for durian", result.Message)
	assert.Empty(t, result.Warnings)
	assert.Zero(t, result.Score())
	assert.True(t, result.SoilPassed())
}

func TestValidateCropLookupIsCaseInsensitive(t *testing.T) {
	lower := ValidateCrop("rice", "Clayey", optimalRiceConditions())
	upper := ValidateCrop("Rice", "Clayey", optimalRiceConditions())

	assert.True(t, upper.HasRules)
	assert.Equal(t, *lower.ValidationScore, *upper.ValidationScore)
}

func TestValidateCropScoreStaysInRange(t *testing.T) {
	hostile := Measurement{
		Nitrogen:    0,
		Phosphorus:  5,
		Potassium:   5,
		Temperature: 55,
		Humidity:    14,
		PH:          3.5,
		Rainfall:    20,
	}
	for _, crop := range KnownCrops() {
		result := ValidateCrop(crop, "Volcanic", hostile)
		assert.True(t, result.HasRules, crop)
		score := *result.ValidationScore
		assert.GreaterOrEqual(t, score, 0.0, crop)
		assert.LessOrEqual(t, score, 100.0, crop)
		assert.False(t, result.AllPassed, crop)
	}
}

func TestCropTableIntegrity(t *testing.T) {
	assert.Equal(t, 23, CropCount())
	assert.Len(t, KnownCrops(), CropCount())

	for _, crop := range KnownCrops() {
		rule, ok := RuleFor(crop)
		assert.True(t, ok, crop)
		assert.NotEmpty(t, rule.PreferredSoils, crop)
		assert.NotEmpty(t, rule.Description, crop)
		assert.Less(t, rule.PHMin, rule.PHMax, crop)
		assert.LessOrEqual(t, rule.PHMin, rule.PHOptimalMin, crop)
		assert.LessOrEqual(t, rule.PHOptimalMax, rule.PHMax, crop)
		assert.Less(t, rule.MinRainfall, rule.MaxRainfall, crop)
		assert.Less(t, rule.MinTemperature, rule.MaxTemperature, crop)
		assert.Less(t, rule.MinHumidity, rule.MaxHumidity, crop)
	}
}
