package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// coffeeConditions returns readings that satisfy every coffee check.
func coffeeConditions() Measurement {
	return Measurement{
		Nitrogen:    50,
		Phosphorus:  45,
		Potassium:   80,
		Temperature: 20,
		Humidity:    75,
		PH:          5.5,
		Rainfall:    200,
	}
}

func TestHybridAcceptsFirstChoiceWhenSoilMatches(t *testing.T) {
	result := HybridAnalyze(optimalRiceConditions(),
		&SoilClassification{PredictedType: "Clayey", Confidence: 90},
		&CropPrediction{
			RecommendedCrop: "rice",
			Confidence:      90,
			Alternatives: []CropAlternative{
				{Crop: "rice", Confidence: 90},
				{Crop: "jute", Confidence: 5},
			},
		})

	assert.Equal(t, "rice", result.CropRecommendation.RecommendedCrop)
	assert.Equal(t, 90.0, result.CropRecommendation.MLConfidence)
	assert.Empty(t, result.CropRecommendation.OriginalMLPrediction)
	assert.Empty(t, result.CropsFilteredOut)

	// 90 * 0.6 + 100 * 0.4 with no warnings.
	assert.Equal(t, 94.0, result.FinalScore)
	assert.Equal(t, "Excellent", result.RecommendationQuality)
	assert.True(t, result.RuleValidation.AllChecksPassed)
	assert.Equal(t, 100.0, result.RuleValidation.ValidationScore)
	assert.Empty(t, result.Warnings)

	for _, alt := range result.CropRecommendation.Alternatives {
		assert.NotEqual(t, "Rice", alt.Crop)
	}
	assert.LessOrEqual(t, len(result.CropRecommendation.Alternatives), 3)
}

func TestHybridAlternativesComeFromRankerTopThree(t *testing.T) {
	m := optimalRiceConditions()
	result := HybridAnalyze(m,
		&SoilClassification{PredictedType: "Loamy", Confidence: 90},
		&CropPrediction{RecommendedCrop: "rice", Confidence: 90})

	top := SuitableCrops("Loamy", m, 3)
	assert.Equal(t, "Rice", top[0].Crop)

	// The final crop sits inside the ranker's top three, so the list
	// shrinks to two instead of pulling in the fourth-ranked crop.
	alternatives := result.CropRecommendation.Alternatives
	assert.Len(t, alternatives, 2)
	assert.Equal(t, top[1].Crop, alternatives[0].Crop)
	assert.Equal(t, top[1].ValidationScore, alternatives[0].Confidence)
	assert.Equal(t, top[2].Crop, alternatives[1].Crop)
	assert.Equal(t, top[2].ValidationScore, alternatives[1].Confidence)
}

func TestHybridOverridesFirstChoiceOnSoilMismatch(t *testing.T) {
	result := HybridAnalyze(coffeeConditions(),
		&SoilClassification{PredictedType: "Laterite", Confidence: 85},
		&CropPrediction{
			RecommendedCrop: "wheat",
			Confidence:      60,
			Alternatives: []CropAlternative{
				{Crop: "coffee", Confidence: 25},
			},
		})

	assert.Equal(t, "coffee", result.CropRecommendation.RecommendedCrop)
	assert.Equal(t, 25.0, result.CropRecommendation.MLConfidence)
	assert.Equal(t, "wheat", result.CropRecommendation.OriginalMLPrediction)

	assert.Len(t, result.CropsFilteredOut, 1)
	assert.Equal(t, "wheat", result.CropsFilteredOut[0].Crop)
	assert.Contains(t, result.CropsFilteredOut[0].Reason, "not suitable")

	assert.Contains(t, result.Suggestions[0], "Selected Coffee")
	assert.Contains(t, result.Suggestions[0], "first choice: wheat")

	found := false
	for _, s := range result.Suggestions {
		if s == "Crops skipped due to soil mismatch: wheat" {
			found = true
		}
	}
	assert.True(t, found)

	// 25 * 0.6 + 100 * 0.4 with no warnings.
	assert.Equal(t, 55.0, result.FinalScore)
	assert.Equal(t, "Moderate", result.RecommendationQuality)
}

func TestHybridFallsBackToRuleRanking(t *testing.T) {
	result := HybridAnalyze(optimalRiceConditions(),
		&SoilClassification{PredictedType: "Black Cotton", Confidence: 80},
		&CropPrediction{
			RecommendedCrop: "coffee",
			Confidence:      70,
			Alternatives: []CropAlternative{
				{Crop: "wheat", Confidence: 20},
				{Crop: "maize", Confidence: 8},
			},
		})

	// Only rice tolerates black cotton soil, so every classifier
	// candidate is rejected and the rule ranking takes over.
	assert.Equal(t, "Rice", result.CropRecommendation.RecommendedCrop)
	assert.Equal(t, "coffee", result.CropRecommendation.OriginalMLPrediction)
	assert.Len(t, result.CropsFilteredOut, 3)

	// Acceptable-but-not-preferred soil costs 0.3 of one component:
	// validation score 95, confidence 95 * 0.7.
	assert.InDelta(t, 95.0, result.RuleValidation.ValidationScore, 0.01)
	assert.InDelta(t, 66.5, result.CropRecommendation.MLConfidence, 0.01)

	found := false
	for _, s := range result.Suggestions {
		if s == "Crops skipped due to soil mismatch: coffee, wheat" {
			found = true
		}
	}
	assert.True(t, found, "skipped-crop note should name at most two crops")
}

func TestHybridKeepsCropWithoutRules(t *testing.T) {
	result := HybridAnalyze(optimalRiceConditions(),
		&SoilClassification{PredictedType: "Clayey", Confidence: 90},
		&CropPrediction{RecommendedCrop: "durian", Confidence: 55})

	// No rules means no soil gate; the classifier's choice stands.
	assert.Equal(t, "durian", result.CropRecommendation.RecommendedCrop)
	assert.False(t, result.RuleValidation.HasRules)
	assert.Zero(t, result.RuleValidation.ValidationScore)

	// 55 * 0.6 + 0 * 0.4.
	assert.Equal(t, 33.0, result.FinalScore)
	assert.Equal(t, "Fair", result.RecommendationQuality)
}

func TestHybridWithoutClassifierOutputs(t *testing.T) {
	result := HybridAnalyze(optimalRiceConditions(), nil, nil)

	assert.Equal(t, "Unknown", result.SoilAnalysis.PredictedType)
	assert.NotNil(t, result.SoilAnalysis.AllProbabilities)
	assert.Equal(t, "Unknown", result.CropRecommendation.RecommendedCrop)
	assert.Zero(t, result.FinalScore)
	assert.Equal(t, "Poor", result.RecommendationQuality)
	assert.Contains(t, result.Suggestions,
		"Soil classification confidence is low - consider soil testing for accurate results")
}

func TestHybridEchoesInput(t *testing.T) {
	m := optimalRiceConditions()
	result := HybridAnalyze(m,
		&SoilClassification{PredictedType: "Clayey", Confidence: 90},
		&CropPrediction{RecommendedCrop: "rice", Confidence: 90})

	assert.Equal(t, m, result.InputSummary)
}

func TestQualityBands(t *testing.T) {
	assert.Equal(t, "Excellent", qualityFor(85, 100, 80, true, 0))
	assert.Equal(t, "Good", qualityFor(85, 90, 80, false, 1))
	assert.Equal(t, "Good", qualityFor(72, 80, 60, false, 0))
	assert.Equal(t, "Moderate", qualityFor(55, 60, 50, false, 0))
	assert.Equal(t, "Moderate", qualityFor(20, 85, 45, false, 0))
	assert.Equal(t, "Fair", qualityFor(35, 40, 30, false, 0))
	assert.Equal(t, "Poor", qualityFor(10, 10, 10, false, 0))

	// Warnings downgrade the top bands and eventually force review.
	assert.Equal(t, "Moderate", qualityFor(85, 100, 80, true, 2))
	assert.Equal(t, "Needs Review", qualityFor(85, 100, 80, true, 3))
	assert.Equal(t, "Needs Review", qualityFor(10, 10, 10, false, 4))
}
