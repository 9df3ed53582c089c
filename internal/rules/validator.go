package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Measurement is one set of field readings: soil nutrients in mg/kg,
// climate figures, and soil pH. JSON names match the analysis API.
type Measurement struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// RangeCheck is the outcome of checking one scalar reading (pH,
// rainfall, temperature or humidity) against a crop's envelope.
type RangeCheck struct {
	Passed  bool   `json:"passed"`
	Optimal bool   `json:"optimal"`
	Message string `json:"message"`
}

// SoilCheck is the outcome of matching the soil type against a crop's
// preferred and acceptable soil lists.
type SoilCheck struct {
	Passed    bool   `json:"passed"`
	Preferred bool   `json:"preferred"`
	Message   string `json:"message"`
}

// NutrientCheck is the combined outcome of the N, P and K checks.
type NutrientCheck struct {
	Passed  bool     `json:"passed"`
	Details []string `json:"details"`
}

// FieldChecks collects every per-field check for one crop. Pointers are
// nil when the crop has no rules.
type FieldChecks struct {
	PH          *RangeCheck    `json:"ph,omitempty"`
	SoilType    *SoilCheck     `json:"soil_type,omitempty"`
	Rainfall    *RangeCheck    `json:"rainfall,omitempty"`
	Temperature *RangeCheck    `json:"temperature,omitempty"`
	Humidity    *RangeCheck    `json:"humidity,omitempty"`
	Nutrients   *NutrientCheck `json:"nutrients,omitempty"`
}

// CropValidation is the full rule verdict for one crop under one set of
// conditions. ValidationScore is nil when the crop has no rules.
type CropValidation struct {
	HasRules        bool        `json:"has_rules"`
	Crop            string      `json:"crop"`
	CropDescription string      `json:"crop_description,omitempty"`
	Message         string      `json:"message,omitempty"`
	ValidationScore *float64    `json:"validation_score"`
	Validations     FieldChecks `json:"validations"`
	Warnings        []string    `json:"warnings"`
	Suggestions     []string    `json:"suggestions"`
	AllPassed       bool        `json:"all_passed"`
}

// Score returns the validation score, treating "no rules" as zero.
func (v *CropValidation) Score() float64 {
	if v.ValidationScore == nil {
		return 0
	}
	return *v.ValidationScore
}

// SoilPassed reports whether the soil type check passed. Crops without
// rules pass vacuously.
func (v *CropValidation) SoilPassed() bool {
	if v.Validations.SoilType == nil {
		return true
	}
	return v.Validations.SoilType.Passed
}

// num renders a float the way it reads in a report: no trailing zeros,
// so 150 stays "150" and 6.5 stays "6.5".
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CheckPH grades soil pH against the crop's acceptable and optimal
// ranges.
func CheckPH(ph float64, rule CropRule) RangeCheck {
	switch {
	case ph >= rule.PHOptimalMin && ph <= rule.PHOptimalMax:
		return RangeCheck{
			Passed:  true,
			Optimal: true,
			Message: fmt.Sprintf("pH %s is optimal (ideal: %s-%s)",
				num(ph), num(rule.PHOptimalMin), num(rule.PHOptimalMax)),
		}
	case ph >= rule.PHMin && ph <= rule.PHMax:
		return RangeCheck{
			Passed: true,
			Message: fmt.Sprintf("pH %s is acceptable but not optimal (optimal: %s-%s)",
				num(ph), num(rule.PHOptimalMin), num(rule.PHOptimalMax)),
		}
	default:
		return RangeCheck{
			Message: fmt.Sprintf("pH %s is outside acceptable range (%s-%s)",
				num(ph), num(rule.PHMin), num(rule.PHMax)),
		}
	}
}

// CheckSoilType grades the soil type against the crop's preferred and
// acceptable soil lists. Matching is exact on the canonical soil names.
func CheckSoilType(soilType string, rule CropRule) SoilCheck {
	for _, s := range rule.PreferredSoils {
		if s == soilType {
			return SoilCheck{
				Passed:    true,
				Preferred: true,
				Message:   fmt.Sprintf("%s soil is preferred for %s", soilType, rule.CropName),
			}
		}
	}
	for _, s := range rule.AcceptableSoils {
		if s == soilType {
			return SoilCheck{
				Passed: true,
				Message: fmt.Sprintf("%s soil is acceptable for %s (preferred: %s)",
					soilType, rule.CropName, strings.Join(rule.PreferredSoils, ", ")),
			}
		}
	}
	suitable := append(append([]string{}, rule.PreferredSoils...), rule.AcceptableSoils...)
	return SoilCheck{
		Message: fmt.Sprintf("%s soil is not recommended for %s (suitable: %s)",
			soilType, rule.CropName, strings.Join(suitable, ", ")),
	}
}

// CheckRainfall grades annual rainfall against the crop's envelope.
func CheckRainfall(rainfall float64, rule CropRule) RangeCheck {
	switch {
	case rainfall >= rule.OptimalRainfallMin && rainfall <= rule.OptimalRainfallMax:
		return RangeCheck{
			Passed:  true,
			Optimal: true,
			Message: fmt.Sprintf("Rainfall %smm is optimal", num(rainfall)),
		}
	case rainfall >= rule.MinRainfall && rainfall <= rule.MaxRainfall:
		return RangeCheck{
			Passed: true,
			Message: fmt.Sprintf("Rainfall %smm is acceptable (optimal: %s-%smm)",
				num(rainfall), num(rule.OptimalRainfallMin), num(rule.OptimalRainfallMax)),
		}
	case rainfall < rule.MinRainfall:
		return RangeCheck{
			Message: fmt.Sprintf("Rainfall %smm is too low (minimum: %smm)",
				num(rainfall), num(rule.MinRainfall)),
		}
	default:
		return RangeCheck{
			Message: fmt.Sprintf("Rainfall %smm is too high (maximum: %smm)",
				num(rainfall), num(rule.MaxRainfall)),
		}
	}
}

// CheckTemperature grades temperature against the crop's envelope.
func CheckTemperature(temperature float64, rule CropRule) RangeCheck {
	switch {
	case temperature >= rule.OptimalTempMin && temperature <= rule.OptimalTempMax:
		return RangeCheck{
			Passed:  true,
			Optimal: true,
			Message: fmt.Sprintf("Temperature %s°C is optimal", num(temperature)),
		}
	case temperature >= rule.MinTemperature && temperature <= rule.MaxTemperature:
		return RangeCheck{
			Passed: true,
			Message: fmt.Sprintf("Temperature %s°C is acceptable (optimal: %s-%s°C)",
				num(temperature), num(rule.OptimalTempMin), num(rule.OptimalTempMax)),
		}
	case temperature < rule.MinTemperature:
		return RangeCheck{
			Message: fmt.Sprintf("Temperature %s°C is too low (minimum: %s°C)",
				num(temperature), num(rule.MinTemperature)),
		}
	default:
		return RangeCheck{
			Message: fmt.Sprintf("Temperature %s°C is too high (maximum: %s°C)",
				num(temperature), num(rule.MaxTemperature)),
		}
	}
}

// CheckHumidity grades humidity. The optimal band is derived from the
// acceptable range: its midpoint plus or minus 30% of the range width.
func CheckHumidity(humidity float64, rule CropRule) RangeCheck {
	mid := (rule.MinHumidity + rule.MaxHumidity) / 2
	band := (rule.MaxHumidity - rule.MinHumidity) * 0.3

	switch {
	case humidity >= mid-band && humidity <= mid+band:
		return RangeCheck{
			Passed:  true,
			Optimal: true,
			Message: fmt.Sprintf("Humidity %s%% is optimal", num(humidity)),
		}
	case humidity >= rule.MinHumidity && humidity <= rule.MaxHumidity:
		return RangeCheck{
			Passed:  true,
			Message: fmt.Sprintf("Humidity %s%% is acceptable", num(humidity)),
		}
	default:
		return RangeCheck{
			Message: fmt.Sprintf("Humidity %s%% is outside acceptable range (%s-%s%%)",
				num(humidity), num(rule.MinHumidity), num(rule.MaxHumidity)),
		}
	}
}

// CheckNutrients grades measured N, P and K against the crop's demands.
// It returns the combined check plus the subset of detail messages that
// describe shortfalls against a High demand; those become warnings.
func CheckNutrients(n, p, k float64, rule CropRule) (NutrientCheck, []string) {
	var details, shortfalls []string
	adequate := true

	type nutrient struct {
		label string
		code  string
		value float64
		need  NutrientLevel
	}
	for _, nu := range []nutrient{
		{label: "Nitrogen", code: "N", value: n, need: rule.NitrogenNeed},
		{label: "Phosphorus", code: "P", value: p, need: rule.PhosphorusNeed},
		{label: "Potassium", code: "K", value: k, need: rule.PotassiumNeed},
	} {
		level := NutrientLevelFor(nu.value, nu.code)
		switch {
		case nu.need == NutrientHigh && level != NutrientHigh:
			msg := fmt.Sprintf("%s: %s needs HIGH %s, current level is %s",
				nu.label, rule.CropName, strings.ToLower(nu.label), level)
			details = append(details, msg)
			shortfalls = append(shortfalls, msg)
			adequate = false
		case nu.need == NutrientLow && level == NutrientHigh:
			details = append(details, fmt.Sprintf("%s: excess %s detected, %s needs LOW %s",
				nu.label, strings.ToLower(nu.label), rule.CropName, strings.ToLower(nu.label)))
		default:
			details = append(details, fmt.Sprintf("%s level (%s) is suitable", nu.label, level))
		}
	}

	return NutrientCheck{Passed: adequate, Details: details}, shortfalls
}

// ValidateCrop runs every field check for one crop and folds the
// results into a 0-100 score. Each check contributes a weight between 0
// and 1 and the score is the mean of the six contributions, scaled to
// 100 and rounded to one decimal.
func ValidateCrop(cropName, soilType string, m Measurement) CropValidation {
	rule, ok := RuleFor(cropName)
	if !ok {
		return CropValidation{
			Crop:        cropName,
			Message:     fmt.Sprintf("No validation rules available for %s", cropName),
			Warnings:    []string{},
			Suggestions: []string{},
		}
	}

	warnings := []string{}
	suggestions := []string{}
	var components []float64

	phCheck := CheckPH(m.PH, rule)
	switch {
	case phCheck.Optimal:
		components = append(components, 1.0)
	case phCheck.Passed:
		components = append(components, 0.7)
		suggestions = append(suggestions, fmt.Sprintf("Adjust pH to %s-%s for optimal growth",
			num(rule.PHOptimalMin), num(rule.PHOptimalMax)))
	default:
		components = append(components, 0.0)
		warnings = append(warnings, fmt.Sprintf("pH %s is unsuitable for %s", num(m.PH), cropName))
	}

	soilCheck := CheckSoilType(soilType, rule)
	switch {
	case soilCheck.Preferred:
		components = append(components, 1.0)
	case soilCheck.Passed:
		components = append(components, 0.7)
		suggestions = append(suggestions, fmt.Sprintf("Consider %s soil for better results",
			strings.Join(rule.PreferredSoils, ", ")))
	default:
		components = append(components, 0.0)
		warnings = append(warnings, fmt.Sprintf("%s soil is not suitable for %s", soilType, cropName))
	}

	rainCheck := CheckRainfall(m.Rainfall, rule)
	switch {
	case rainCheck.Optimal:
		components = append(components, 1.0)
	case rainCheck.Passed:
		components = append(components, 0.7)
	default:
		components = append(components, 0.3)
		if m.Rainfall < rule.MinRainfall {
			warnings = append(warnings, fmt.Sprintf("Insufficient rainfall for %s - consider irrigation", cropName))
		} else {
			warnings = append(warnings, fmt.Sprintf("Excessive rainfall may affect %s", cropName))
		}
	}

	tempCheck := CheckTemperature(m.Temperature, rule)
	switch {
	case tempCheck.Optimal:
		components = append(components, 1.0)
	case tempCheck.Passed:
		components = append(components, 0.7)
	default:
		components = append(components, 0.2)
		warnings = append(warnings, fmt.Sprintf("Temperature %s°C may stress the crop", num(m.Temperature)))
	}

	humCheck := CheckHumidity(m.Humidity, rule)
	switch {
	case humCheck.Optimal:
		components = append(components, 1.0)
	case humCheck.Passed:
		components = append(components, 0.8)
	default:
		components = append(components, 0.4)
		suggestions = append(suggestions, "Consider humidity management techniques")
	}

	nutCheck, shortfalls := CheckNutrients(m.Nitrogen, m.Phosphorus, m.Potassium, rule)
	if nutCheck.Passed {
		components = append(components, 1.0)
	} else {
		components = append(components, 0.6)
		warnings = append(warnings, shortfalls...)
	}

	var sum float64
	for _, c := range components {
		sum += c
	}
	score := round1(sum / float64(len(components)) * 100)

	allPassed := phCheck.Passed && soilCheck.Passed && rainCheck.Passed &&
		tempCheck.Passed && humCheck.Passed && nutCheck.Passed

	return CropValidation{
		HasRules:        true,
		Crop:            cropName,
		CropDescription: rule.Description,
		ValidationScore: &score,
		Validations: FieldChecks{
			PH:          &phCheck,
			SoilType:    &soilCheck,
			Rainfall:    &rainCheck,
			Temperature: &tempCheck,
			Humidity:    &humCheck,
			Nutrients:   &nutCheck,
		},
		Warnings:    warnings,
		Suggestions: suggestions,
		AllPassed:   allPassed,
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
