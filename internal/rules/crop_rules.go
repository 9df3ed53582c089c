package rules

import "strings"

// NutrientLevel classifies how much of a nutrient a crop needs, or how
// much of it a field measurement provides.
type NutrientLevel string

const (
	NutrientLow      NutrientLevel = "Low"
	NutrientModerate NutrientLevel = "Moderate"
	NutrientHigh     NutrientLevel = "High"
)

// nutrientThresholds map measured mg/kg values to levels. Below "low" is
// Low, above "high" is High, everything between is Moderate.
var nutrientThresholds = map[string]struct{ low, high float64 }{
	"N": {low: 40, high: 80},
	"P": {low: 30, high: 60},
	"K": {low: 40, high: 70},
}

// NutrientLevelFor classifies a measured nutrient value. nutrient is one
// of "N", "P" or "K"; unrecognized nutrients fall back to the potassium
// thresholds.
func NutrientLevelFor(value float64, nutrient string) NutrientLevel {
	thresh, ok := nutrientThresholds[nutrient]
	if !ok {
		thresh = struct{ low, high float64 }{low: 40, high: 70}
	}
	switch {
	case value < thresh.low:
		return NutrientLow
	case value > thresh.high:
		return NutrientHigh
	default:
		return NutrientModerate
	}
}

// CropRule holds the agronomic envelope for one crop: acceptable and
// optimal ranges for pH, rainfall, temperature and humidity, the soil
// types it grows in, and its nutrient demands.
type CropRule struct {
	CropName string

	PHMin, PHMax               float64
	PHOptimalMin, PHOptimalMax float64

	PreferredSoils  []string
	AcceptableSoils []string

	MinRainfall, MaxRainfall               float64
	OptimalRainfallMin, OptimalRainfallMax float64

	MinTemperature, MaxTemperature float64
	OptimalTempMin, OptimalTempMax float64

	NitrogenNeed   NutrientLevel
	PhosphorusNeed NutrientLevel
	PotassiumNeed  NutrientLevel

	MinHumidity, MaxHumidity float64

	Description string
}

// cropOrder preserves the original table order so that crops with equal
// scores rank deterministically.
var cropOrder = []string{
	"rice", "wheat", "maize", "cotton", "jute", "coffee", "banana",
	"mango", "apple", "grapes", "orange", "papaya", "coconut",
	"chickpea", "lentil", "pigeonpeas", "mothbeans", "mungbean",
	"blackgram", "kidneybeans", "pomegranate", "watermelon", "muskmelon",
}

var cropRules = map[string]CropRule{
	"rice": {
		CropName:     "Rice",
		PHMin:        5.0,
		PHMax:        8.0,
		PHOptimalMin: 5.5,
		PHOptimalMax: 6.5,
		PreferredSoils: []string{
			"Clayey", "Loamy", "Riverine Alluvial", "Coastal Alluvial",
		},
		AcceptableSoils:    []string{"Silty", "Black Cotton"},
		MinRainfall:        150,
		MaxRainfall:        300,
		OptimalRainfallMin: 180,
		OptimalRainfallMax: 250,
		MinTemperature:     20,
		MaxTemperature:     40,
		OptimalTempMin:     22,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        70,
		MaxHumidity:        100,
		Description:        "Paddy crop requiring flooded conditions and high water availability",
	},
	"wheat": {
		CropName:           "Wheat",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Clayey"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        50,
		MaxRainfall:        150,
		OptimalRainfallMin: 75,
		OptimalRainfallMax: 100,
		MinTemperature:     10,
		MaxTemperature:     30,
		OptimalTempMin:     12,
		OptimalTempMax:     25,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        50,
		MaxHumidity:        85,
		Description:        "Major cereal crop preferring cool and dry conditions",
	},
	"maize": {
		CropName:           "Maize",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       5.8,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey", "Silty"},
		MinRainfall:        60,
		MaxRainfall:        120,
		OptimalRainfallMin: 80,
		OptimalRainfallMax: 110,
		MinTemperature:     18,
		MaxTemperature:     35,
		OptimalTempMin:     21,
		OptimalTempMax:     30,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Versatile grain crop adaptable to various conditions",
	},
	"cotton": {
		CropName:           "Cotton",
		PHMin:              5.5,
		PHMax:              8.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.5,
		PreferredSoils:     []string{"Clayey", "Loamy"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        50,
		MaxRainfall:        150,
		OptimalRainfallMin: 80,
		OptimalRainfallMax: 120,
		MinTemperature:     20,
		MaxTemperature:     40,
		OptimalTempMin:     25,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        40,
		MaxHumidity:        70,
		Description:        "Fiber crop requiring warm temperatures and moderate water",
	},
	"jute": {
		CropName:           "Jute",
		PHMin:              5.0,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Clayey"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        150,
		MaxRainfall:        250,
		OptimalRainfallMin: 170,
		OptimalRainfallMax: 230,
		MinTemperature:     25,
		MaxTemperature:     38,
		OptimalTempMin:     27,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        70,
		MaxHumidity:        90,
		Description:        "Fiber crop requiring warm and humid conditions",
	},
	"coffee": {
		CropName:     "Coffee",
		PHMin:        4.5,
		PHMax:        6.5,
		PHOptimalMin: 5.0,
		PHOptimalMax: 6.0,
		PreferredSoils: []string{
			"Loamy", "Forest Loam", "Red Loam", "Laterite",
		},
		AcceptableSoils:    []string{"Clayey", "Silty", "Brown Hydromorphic"},
		MinRainfall:        150,
		MaxRainfall:        300,
		OptimalRainfallMin: 180,
		OptimalRainfallMax: 250,
		MinTemperature:     15,
		MaxTemperature:     30,
		OptimalTempMin:     18,
		OptimalTempMax:     25,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        60,
		MaxHumidity:        90,
		Description:        "Plantation crop preferring shade and consistent moisture",
	},
	"banana": {
		CropName:     "Banana",
		PHMin:        5.5,
		PHMax:        7.5,
		PHOptimalMin: 6.0,
		PHOptimalMax: 7.0,
		PreferredSoils: []string{
			"Loamy", "Riverine Alluvial", "Coastal Alluvial",
		},
		AcceptableSoils:    []string{"Clayey", "Silty", "Red Loam", "Laterite"},
		MinRainfall:        100,
		MaxRainfall:        250,
		OptimalRainfallMin: 150,
		OptimalRainfallMax: 200,
		MinTemperature:     20,
		MaxTemperature:     35,
		OptimalTempMin:     25,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        70,
		MaxHumidity:        90,
		Description:        "Tropical fruit requiring consistent warmth and moisture",
	},
	"mango": {
		CropName:           "Mango",
		PHMin:              5.5,
		PHMax:              7.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy", "Red Loam", "Laterite"},
		AcceptableSoils:    []string{"Clayey", "Forest Loam", "Brown Hydromorphic"},
		MinRainfall:        75,
		MaxRainfall:        250,
		OptimalRainfallMin: 100,
		OptimalRainfallMax: 200,
		MinTemperature:     21,
		MaxTemperature:     45,
		OptimalTempMin:     24,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        40,
		MaxHumidity:        80,
		Description:        "Tropical fruit tree requiring hot temperatures and seasonal rains",
	},
	"apple": {
		CropName:           "Apple",
		PHMin:              5.5,
		PHMax:              7.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       6.8,
		PreferredSoils:     []string{"Loamy"},
		AcceptableSoils:    []string{"Sandy", "Silty"},
		MinRainfall:        100,
		MaxRainfall:        200,
		OptimalRainfallMin: 125,
		OptimalRainfallMax: 175,
		MinTemperature:     8,
		MaxTemperature:     28,
		OptimalTempMin:     10,
		OptimalTempMax:     22,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Temperate fruit requiring cold winters for dormancy",
	},
	"grapes": {
		CropName:           "Grapes",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        50,
		MaxRainfall:        150,
		OptimalRainfallMin: 75,
		OptimalRainfallMax: 100,
		MinTemperature:     15,
		MaxTemperature:     40,
		OptimalTempMin:     20,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        40,
		MaxHumidity:        70,
		Description:        "Vine fruit preferring warm, dry conditions",
	},
	"orange": {
		CropName:           "Orange",
		PHMin:              5.0,
		PHMax:              8.0,
		PHOptimalMin:       5.5,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        100,
		MaxRainfall:        200,
		OptimalRainfallMin: 120,
		OptimalRainfallMax: 180,
		MinTemperature:     13,
		MaxTemperature:     38,
		OptimalTempMin:     20,
		OptimalTempMax:     30,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Citrus fruit requiring subtropical climate",
	},
	"papaya": {
		CropName:           "Papaya",
		PHMin:              5.5,
		PHMax:              7.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        100,
		MaxRainfall:        250,
		OptimalRainfallMin: 150,
		OptimalRainfallMax: 200,
		MinTemperature:     20,
		MaxTemperature:     38,
		OptimalTempMin:     25,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientHigh,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        60,
		MaxHumidity:        85,
		Description:        "Tropical fruit requiring warm temperatures year-round",
	},
	"coconut": {
		CropName:     "Coconut",
		PHMin:        5.0,
		PHMax:        8.0,
		PHOptimalMin: 5.5,
		PHOptimalMax: 7.0,
		PreferredSoils: []string{
			"Sandy", "Loamy", "Coastal Alluvial", "Laterite", "Red Loam",
		},
		AcceptableSoils:    []string{"Clayey", "Riverine Alluvial"},
		MinRainfall:        150,
		MaxRainfall:        300,
		OptimalRainfallMin: 180,
		OptimalRainfallMax: 250,
		MinTemperature:     20,
		MaxTemperature:     35,
		OptimalTempMin:     25,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        70,
		MaxHumidity:        95,
		Description:        "Coastal palm preferring sandy soils and high humidity",
	},
	"chickpea": {
		CropName:           "Chickpea",
		PHMin:              5.5,
		PHMax:              8.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.5,
		PreferredSoils:     []string{"Loamy", "Clayey"},
		AcceptableSoils:    []string{"Sandy", "Silty"},
		MinRainfall:        40,
		MaxRainfall:        100,
		OptimalRainfallMin: 60,
		OptimalRainfallMax: 80,
		MinTemperature:     10,
		MaxTemperature:     30,
		OptimalTempMin:     15,
		OptimalTempMax:     25,
		NitrogenNeed:       NutrientLow, // legume, fixes its own nitrogen
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        40,
		MaxHumidity:        70,
		Description:        "Pulse crop that fixes nitrogen, prefers cool and dry conditions",
	},
	"lentil": {
		CropName:           "Lentil",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey", "Silty"},
		MinRainfall:        25,
		MaxRainfall:        100,
		OptimalRainfallMin: 40,
		OptimalRainfallMax: 75,
		MinTemperature:     10,
		MaxTemperature:     30,
		OptimalTempMin:     15,
		OptimalTempMax:     25,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        30,
		MaxHumidity:        70,
		Description:        "Pulse crop tolerant to dry conditions",
	},
	"pigeonpeas": {
		CropName:           "Pigeonpeas",
		PHMin:              5.0,
		PHMax:              8.0,
		PHOptimalMin:       5.5,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        60,
		MaxRainfall:        150,
		OptimalRainfallMin: 80,
		OptimalRainfallMax: 120,
		MinTemperature:     18,
		MaxTemperature:     35,
		OptimalTempMin:     22,
		OptimalTempMax:     30,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        40,
		MaxHumidity:        80,
		Description:        "Drought-tolerant legume for semi-arid regions",
	},
	"mothbeans": {
		CropName:           "Mothbeans",
		PHMin:              5.0,
		PHMax:              8.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.5,
		PreferredSoils:     []string{"Sandy", "Loamy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        25,
		MaxRainfall:        75,
		OptimalRainfallMin: 35,
		OptimalRainfallMax: 60,
		MinTemperature:     24,
		MaxTemperature:     40,
		OptimalTempMin:     28,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        30,
		MaxHumidity:        60,
		Description:        "Highly drought-tolerant legume for arid regions",
	},
	"mungbean": {
		CropName:           "Mungbean",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        50,
		MaxRainfall:        100,
		OptimalRainfallMin: 60,
		OptimalRainfallMax: 85,
		MinTemperature:     20,
		MaxTemperature:     38,
		OptimalTempMin:     25,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Fast-growing pulse crop for warm conditions",
	},
	"blackgram": {
		CropName:           "Blackgram",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy", "Clayey"},
		AcceptableSoils:    []string{"Sandy", "Silty"},
		MinRainfall:        60,
		MaxRainfall:        120,
		OptimalRainfallMin: 75,
		OptimalRainfallMax: 100,
		MinTemperature:     25,
		MaxTemperature:     38,
		OptimalTempMin:     27,
		OptimalTempMax:     33,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientLow,
		MinHumidity:        60,
		MaxHumidity:        85,
		Description:        "Legume crop preferring warm and humid conditions",
	},
	"kidneybeans": {
		CropName:           "Kidneybeans",
		PHMin:              5.5,
		PHMax:              7.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Loamy"},
		AcceptableSoils:    []string{"Clayey", "Sandy"},
		MinRainfall:        60,
		MaxRainfall:        150,
		OptimalRainfallMin: 80,
		OptimalRainfallMax: 120,
		MinTemperature:     15,
		MaxTemperature:     30,
		OptimalTempMin:     18,
		OptimalTempMax:     25,
		NitrogenNeed:       NutrientLow,
		PhosphorusNeed:     NutrientHigh,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Bean crop preferring moderate temperatures",
	},
	"pomegranate": {
		CropName:           "Pomegranate",
		PHMin:              5.5,
		PHMax:              8.0,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.5,
		PreferredSoils:     []string{"Loamy", "Sandy"},
		AcceptableSoils:    []string{"Clayey"},
		MinRainfall:        50,
		MaxRainfall:        150,
		OptimalRainfallMin: 75,
		OptimalRainfallMax: 120,
		MinTemperature:     18,
		MaxTemperature:     40,
		OptimalTempMin:     22,
		OptimalTempMax:     35,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientLow,
		PotassiumNeed:      NutrientModerate,
		MinHumidity:        35,
		MaxHumidity:        70,
		Description:        "Drought-tolerant fruit tree for semi-arid regions",
	},
	"watermelon": {
		CropName:           "Watermelon",
		PHMin:              5.5,
		PHMax:              7.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       7.0,
		PreferredSoils:     []string{"Sandy", "Loamy"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        40,
		MaxRainfall:        80,
		OptimalRainfallMin: 50,
		OptimalRainfallMax: 70,
		MinTemperature:     22,
		MaxTemperature:     38,
		OptimalTempMin:     25,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        50,
		MaxHumidity:        80,
		Description:        "Vine fruit requiring warm temperatures and sandy soil",
	},
	"muskmelon": {
		CropName:           "Muskmelon",
		PHMin:              5.5,
		PHMax:              7.5,
		PHOptimalMin:       6.0,
		PHOptimalMax:       6.8,
		PreferredSoils:     []string{"Sandy", "Loamy"},
		AcceptableSoils:    []string{"Silty"},
		MinRainfall:        35,
		MaxRainfall:        75,
		OptimalRainfallMin: 45,
		OptimalRainfallMax: 65,
		MinTemperature:     20,
		MaxTemperature:     38,
		OptimalTempMin:     24,
		OptimalTempMax:     32,
		NitrogenNeed:       NutrientModerate,
		PhosphorusNeed:     NutrientModerate,
		PotassiumNeed:      NutrientHigh,
		MinHumidity:        45,
		MaxHumidity:        75,
		Description:        "Melon preferring warm, dry conditions",
	},
}

// RuleFor returns the agronomic rule for a crop. Lookup is
// case-insensitive.
func RuleFor(cropName string) (CropRule, bool) {
	rule, ok := cropRules[strings.ToLower(cropName)]
	return rule, ok
}

// CropCount reports how many crops have rules defined.
func CropCount() int {
	return len(cropRules)
}

// KnownCrops returns the display names of every crop with rules, in
// table order.
func KnownCrops() []string {
	names := make([]string, 0, len(cropOrder))
	for _, key := range cropOrder {
		names = append(names, cropRules[key].CropName)
	}
	return names
}
