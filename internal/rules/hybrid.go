package rules

import (
	"fmt"
	"strings"
)

// Score fusion weights and the per-warning penalty applied on top of
// the fused score.
const (
	mlWeight       = 0.6
	ruleWeight     = 0.4
	warningPenalty = 5.0

	lowSoilConfidence = 70.0
)

// SoilClassification is a classifier verdict on soil type.
type SoilClassification struct {
	PredictedType    string             `json:"predicted_type"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities"`
}

// CropAlternative pairs a crop with a confidence or suitability figure.
type CropAlternative struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
}

// CropPrediction is a classifier's crop recommendation with its ranked
// alternatives.
type CropPrediction struct {
	RecommendedCrop string            `json:"recommended_crop"`
	Confidence      float64           `json:"confidence"`
	Alternatives    []CropAlternative `json:"alternatives"`
}

// FilteredCrop records a candidate that was rejected during rule
// filtering and why.
type FilteredCrop struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// CropRecommendation is the final crop choice after rule filtering.
// OriginalMLPrediction is set only when the classifier's first choice
// was overridden.
type CropRecommendation struct {
	RecommendedCrop      string            `json:"recommended_crop"`
	MLConfidence         float64           `json:"ml_confidence"`
	Alternatives         []CropAlternative `json:"alternatives"`
	OriginalMLPrediction string            `json:"original_ml_prediction,omitempty"`
}

// RuleVerdict summarizes the rule validation of the final crop.
type RuleVerdict struct {
	HasRules        bool        `json:"has_rules"`
	ValidationScore float64     `json:"validation_score"`
	AllChecksPassed bool        `json:"all_checks_passed"`
	Validations     FieldChecks `json:"validations"`
	CropDescription string      `json:"crop_description"`
}

// HybridResult is the full outcome of a hybrid analysis.
type HybridResult struct {
	SoilAnalysis          SoilClassification `json:"soil_analysis"`
	CropRecommendation    CropRecommendation `json:"crop_recommendation"`
	RuleValidation        RuleVerdict        `json:"rule_validation"`
	FinalScore            float64            `json:"final_score"`
	RecommendationQuality string             `json:"recommendation_quality"`
	Warnings              []string           `json:"warnings"`
	Suggestions           []string           `json:"suggestions"`
	AlternativeCrops      []RankedCrop       `json:"alternative_crops"`
	CropsFilteredOut      []FilteredCrop     `json:"crops_filtered_out"`
	InputSummary          Measurement        `json:"input_summary"`
}

// HybridAnalyze fuses classifier outputs with the rule engine.
//
// The classifier's candidates are walked in confidence order and the
// first one that passes the soil type check (or has no rules) wins. If
// every candidate fails, the rule-based ranking takes over; if even
// that is empty, the classifier's first choice is kept as-is. The final
// score blends classifier confidence with the rule validation score and
// subtracts a penalty per warning.
//
// soil and crop may be nil when the classifier is unavailable; the
// analysis then runs on rule scores alone.
func HybridAnalyze(m Measurement, soil *SoilClassification, crop *CropPrediction) HybridResult {
	soilAnalysis := SoilClassification{
		PredictedType:    "Unknown",
		AllProbabilities: map[string]float64{},
	}
	if soil != nil {
		soilAnalysis = *soil
		if soilAnalysis.AllProbabilities == nil {
			soilAnalysis.AllProbabilities = map[string]float64{}
		}
	}

	mlCrop := "Unknown"
	var mlConfidence float64
	var mlAlternatives []CropAlternative
	if crop != nil {
		mlCrop = crop.RecommendedCrop
		mlConfidence = crop.Confidence
		mlAlternatives = crop.Alternatives
	}

	candidates := append([]CropAlternative{{Crop: mlCrop, Confidence: mlConfidence}}, mlAlternatives...)

	var (
		finalCrop       string
		finalConfidence float64
		finalValidation CropValidation
		filteredOut     []FilteredCrop
	)

	for _, candidate := range candidates {
		validation := ValidateCrop(candidate.Crop, soilAnalysis.PredictedType, m)
		if !validation.HasRules || validation.SoilPassed() {
			finalCrop = candidate.Crop
			finalConfidence = candidate.Confidence
			finalValidation = validation
			break
		}
		reason := "Soil type mismatch"
		if len(validation.Warnings) > 0 {
			reason = validation.Warnings[0]
		}
		filteredOut = append(filteredOut, FilteredCrop{
			Crop:       candidate.Crop,
			Confidence: candidate.Confidence,
			Reason:     reason,
		})
	}

	if finalCrop == "" {
		// Every classifier candidate failed the soil gate. Let the
		// rule ranking pick, using its score (scaled down) as a
		// confidence stand-in.
		if ranked := SuitableCrops(soilAnalysis.PredictedType, m, 5); len(ranked) > 0 {
			finalCrop = ranked[0].Crop
			finalConfidence = ranked[0].ValidationScore * 0.7
			finalValidation = ValidateCrop(finalCrop, soilAnalysis.PredictedType, m)
		} else {
			finalCrop = mlCrop
			finalConfidence = mlConfidence
			finalValidation = ValidateCrop(mlCrop, soilAnalysis.PredictedType, m)
		}
	}

	rankedCrops := SuitableCrops(soilAnalysis.PredictedType, m, 5)

	validationScore := finalValidation.Score()
	warnings := finalValidation.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	baseScore := finalConfidence*mlWeight + validationScore*ruleWeight
	finalScore := baseScore - float64(len(warnings))*warningPenalty
	if finalScore < 0 {
		finalScore = 0
	}

	quality := qualityFor(finalScore, validationScore, finalConfidence,
		finalValidation.AllPassed, len(warnings))

	suggestions := append([]string{}, finalValidation.Suggestions...)
	overridden := !strings.EqualFold(finalCrop, mlCrop)
	if overridden {
		suggestions = append([]string{fmt.Sprintf(
			"Selected %s (better suited than the model's first choice: %s)",
			titleCase(finalCrop), mlCrop)}, suggestions...)
	}
	if len(filteredOut) > 0 {
		names := make([]string, 0, 2)
		for _, f := range filteredOut {
			names = append(names, f.Crop)
			if len(names) == 2 {
				break
			}
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Crops skipped due to soil mismatch: %s", strings.Join(names, ", ")))
	}
	if soilAnalysis.Confidence < lowSoilConfidence {
		suggestions = append(suggestions,
			"Soil classification confidence is low - consider soil testing for accurate results")
	}

	// Only the ranker's top three are considered, so a final crop
	// sitting among them shrinks the list rather than being replaced.
	alternatives := []CropAlternative{}
	for _, ranked := range rankedCrops[:min(3, len(rankedCrops))] {
		if strings.EqualFold(ranked.Crop, finalCrop) {
			continue
		}
		alternatives = append(alternatives, CropAlternative{
			Crop:       ranked.Crop,
			Confidence: ranked.ValidationScore,
		})
	}

	recommendation := CropRecommendation{
		RecommendedCrop: finalCrop,
		MLConfidence:    finalConfidence,
		Alternatives:    alternatives,
	}
	if overridden {
		recommendation.OriginalMLPrediction = mlCrop
	}

	if filteredOut == nil {
		filteredOut = []FilteredCrop{}
	}
	if rankedCrops == nil {
		rankedCrops = []RankedCrop{}
	}

	return HybridResult{
		SoilAnalysis:       soilAnalysis,
		CropRecommendation: recommendation,
		RuleValidation: RuleVerdict{
			HasRules:        finalValidation.HasRules,
			ValidationScore: validationScore,
			AllChecksPassed: finalValidation.AllPassed,
			Validations:     finalValidation.Validations,
			CropDescription: finalValidation.CropDescription,
		},
		FinalScore:            round1(finalScore),
		RecommendationQuality: quality,
		Warnings:              warnings,
		Suggestions:           suggestions,
		AlternativeCrops:      rankedCrops,
		CropsFilteredOut:      filteredOut,
		InputSummary:          m,
	}
}

// qualityFor maps a fused score onto a quality band, then downgrades
// when warnings pile up.
func qualityFor(finalScore, validationScore, confidence float64, allPassed bool, warningCount int) string {
	var quality string
	switch {
	case finalScore >= 80 && allPassed:
		quality = "Excellent"
	case finalScore >= 70 && warningCount <= 1:
		quality = "Good"
	case finalScore >= 50 || (validationScore >= 80 && confidence >= 40):
		quality = "Moderate"
	case finalScore >= 30:
		quality = "Fair"
	default:
		quality = "Poor"
	}

	if warningCount >= 2 && (quality == "Excellent" || quality == "Good") {
		quality = "Moderate"
	}
	if warningCount >= 3 {
		quality = "Needs Review"
	}
	return quality
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
