package services

import (
	"testing"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMLClient struct {
	soil *rules.SoilClassification
	crop *rules.CropPrediction
}

func (f *fakeMLClient) ClassifySoil(m rules.Measurement) (*rules.SoilClassification, error) {
	if f.soil == nil {
		return nil, assert.AnError
	}
	return f.soil, nil
}

func (f *fakeMLClient) PredictCrop(m rules.Measurement) (*rules.CropPrediction, error) {
	if f.crop == nil {
		return nil, assert.AnError
	}
	return f.crop, nil
}

func (f *fakeMLClient) ModelStatus() (*models.ModelStatus, error) {
	return nil, assert.AnError
}

func riceMeasurement() rules.Measurement {
	return rules.Measurement{
		Nitrogen:    90,
		Phosphorus:  45,
		Potassium:   50,
		Temperature: 25,
		Humidity:    80,
		PH:          6.0,
		Rainfall:    200,
	}
}

func TestHybridAnalyzeAttachesRelatedProducts(t *testing.T) {
	mlClient := &fakeMLClient{
		soil: &rules.SoilClassification{PredictedType: "Clayey", Confidence: 90},
		crop: &rules.CropPrediction{RecommendedCrop: "rice", Confidence: 90},
	}
	productService := NewProductService(&fakeProductRepo{products: catalogue()})
	service := NewPredictionService(mlClient, productService)

	result, err := service.HybridAnalyze(riceMeasurement())
	require.NoError(t, err)

	// The accepted classifier candidate keeps its raw name.
	assert.Equal(t, "rice", result.CropRecommendation.RecommendedCrop)
	assert.NotEmpty(t, result.RelatedProducts)
	for _, p := range result.RelatedProducts {
		assert.NotEmpty(t, p.ProductID)
	}
}

func TestHybridAnalyzeSurvivesClassifierOutage(t *testing.T) {
	productService := NewProductService(&fakeProductRepo{products: catalogue()})
	service := NewPredictionService(&fakeMLClient{}, productService)

	result, err := service.HybridAnalyze(riceMeasurement())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", result.SoilAnalysis.PredictedType)
	assert.NotNil(t, result.RelatedProducts)
}

func TestAnalyzeFailsWhenBothClassifiersDown(t *testing.T) {
	productService := NewProductService(&fakeProductRepo{products: catalogue()})
	service := NewPredictionService(&fakeMLClient{}, productService)

	_, err := service.Analyze(riceMeasurement())
	assert.Error(t, err)
}

func TestAnalyzeFillsMissingSide(t *testing.T) {
	mlClient := &fakeMLClient{
		crop: &rules.CropPrediction{RecommendedCrop: "rice", Confidence: 88},
	}
	productService := NewProductService(&fakeProductRepo{products: catalogue()})
	service := NewPredictionService(mlClient, productService)

	analysis, err := service.Analyze(riceMeasurement())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", analysis.SoilAnalysis.PredictedType)
	assert.Equal(t, "rice", analysis.CropRecommendation.RecommendedCrop)
}

func TestModelStatusAlwaysReportsRuleEngine(t *testing.T) {
	productService := NewProductService(&fakeProductRepo{products: catalogue()})
	service := NewPredictionService(&fakeMLClient{}, productService)

	status := service.ModelStatus()
	require.NotNil(t, status)

	assert.True(t, status.RuleEngine.Loaded)
	assert.Equal(t, rules.CropCount(), status.RuleEngine.CropsWithRules)
	assert.False(t, status.CropModel.Loaded)
}
