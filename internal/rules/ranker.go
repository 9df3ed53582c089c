package rules

import "sort"

// RankedCrop is one entry in a rule-based suitability ranking.
type RankedCrop struct {
	Crop            string  `json:"crop"`
	ValidationScore float64 `json:"validation_score"`
	AllPassed       bool    `json:"all_passed"`
	WarningsCount   int     `json:"warnings_count"`
	Description     string  `json:"description"`
	SoilCompatible  bool    `json:"soil_compatible"`
}

// SuitableCrops scores every crop in the rule table against the given
// conditions and returns the best topN matches, highest score first.
// Crops whose soil type check fails are excluded outright. Ties keep
// the rule table order.
func SuitableCrops(soilType string, m Measurement, topN int) []RankedCrop {
	var results []RankedCrop

	for _, key := range cropOrder {
		validation := ValidateCrop(key, soilType, m)
		if validation.ValidationScore == nil {
			continue
		}
		if !validation.SoilPassed() {
			continue
		}
		results = append(results, RankedCrop{
			Crop:            cropRules[key].CropName,
			ValidationScore: *validation.ValidationScore,
			AllPassed:       validation.AllPassed,
			WarningsCount:   len(validation.Warnings),
			Description:     cropRules[key].Description,
			SoilCompatible:  true,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ValidationScore > results[j].ValidationScore
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results
}
