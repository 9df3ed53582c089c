package models

import "agrisoil-backend/internal/rules"

// AnalysisResponse pairs the soil and crop classifier outputs without
// rule validation.
type AnalysisResponse struct {
	SoilAnalysis       rules.SoilClassification `json:"soil_analysis"`
	CropRecommendation rules.CropPrediction     `json:"crop_recommendation"`
	InputSummary       rules.Measurement        `json:"input_summary"`
}

// HybridAnalysisResponse is a hybrid analysis enriched with shop
// products that match the recommended crops.
type HybridAnalysisResponse struct {
	rules.HybridResult
	RelatedProducts []Product `json:"related_products"`
}

// ClassifierModelStatus describes one remote classifier model.
type ClassifierModelStatus struct {
	Loaded   bool     `json:"loaded"`
	Classes  []string `json:"classes"`
	NClasses int      `json:"n_classes"`
}

// RuleEngineStatus describes the embedded rule table.
type RuleEngineStatus struct {
	Loaded         bool `json:"loaded"`
	CropsWithRules int  `json:"crops_with_rules"`
}

// ModelStatus aggregates the health of every prediction component.
type ModelStatus struct {
	CropModel  ClassifierModelStatus `json:"crop_model"`
	SoilModel  ClassifierModelStatus `json:"soil_model"`
	RuleEngine RuleEngineStatus      `json:"rule_engine"`
}
