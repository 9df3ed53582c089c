package services

import (
	"fmt"
	"log"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/rules"
)

type IPredictionService interface {
	ClassifySoil(m rules.Measurement) (*rules.SoilClassification, error)
	PredictCrop(m rules.Measurement) (*rules.CropPrediction, error)
	Analyze(m rules.Measurement) (*models.AnalysisResponse, error)
	HybridAnalyze(m rules.Measurement) (*models.HybridAnalysisResponse, error)
	ModelStatus() *models.ModelStatus
}

type PredictionService struct {
	mlClient       IMLClient
	productService IProductService
}

func NewPredictionService(mlClient IMLClient, productService IProductService) IPredictionService {
	return &PredictionService{
		mlClient:       mlClient,
		productService: productService,
	}
}

func (s *PredictionService) ClassifySoil(m rules.Measurement) (*rules.SoilClassification, error) {
	return s.mlClient.ClassifySoil(m)
}

func (s *PredictionService) PredictCrop(m rules.Measurement) (*rules.CropPrediction, error) {
	return s.mlClient.PredictCrop(m)
}

// Analyze runs both classifiers and reports their raw outputs side by
// side. Either classifier may be unavailable; the response carries
// placeholders for the missing side as long as one of them answered.
func (s *PredictionService) Analyze(m rules.Measurement) (*models.AnalysisResponse, error) {
	soil, soilErr := s.mlClient.ClassifySoil(m)
	if soilErr != nil {
		log.Printf("soil classification unavailable: %v", soilErr)
	}
	crop, cropErr := s.mlClient.PredictCrop(m)
	if cropErr != nil {
		log.Printf("crop prediction unavailable: %v", cropErr)
	}

	if soil == nil && crop == nil {
		return nil, fmt.Errorf("classifier service unavailable")
	}

	resp := &models.AnalysisResponse{
		InputSummary: m,
	}
	if soil != nil {
		resp.SoilAnalysis = *soil
	} else {
		resp.SoilAnalysis = rules.SoilClassification{PredictedType: "Unknown"}
	}
	if crop != nil {
		resp.CropRecommendation = *crop
	} else {
		resp.CropRecommendation = rules.CropPrediction{RecommendedCrop: "Unknown"}
	}
	return resp, nil
}

// HybridAnalyze combines the classifier outputs with the crop rule
// table and attaches shop products related to the recommended crops.
// Classifier outages degrade the result instead of failing it; the
// rule table always answers.
func (s *PredictionService) HybridAnalyze(m rules.Measurement) (*models.HybridAnalysisResponse, error) {
	soil, err := s.mlClient.ClassifySoil(m)
	if err != nil {
		log.Printf("soil classification unavailable, falling back to rules only: %v", err)
	}
	crop, err := s.mlClient.PredictCrop(m)
	if err != nil {
		log.Printf("crop prediction unavailable, falling back to rules only: %v", err)
	}

	result := rules.HybridAnalyze(m, soil, crop)

	cropNames := []string{result.CropRecommendation.RecommendedCrop}
	for _, alt := range result.AlternativeCrops {
		cropNames = append(cropNames, alt.Crop)
	}

	related, err := s.productService.GetRelatedProducts(cropNames, relatedProductsLimit)
	if err != nil {
		log.Printf("failed to load related products: %v", err)
		related = []*models.Product{}
	}

	products := make([]models.Product, 0, len(related))
	for _, p := range related {
		products = append(products, *p)
	}

	return &models.HybridAnalysisResponse{
		HybridResult:    result,
		RelatedProducts: products,
	}, nil
}

// ModelStatus reports classifier availability together with the local
// rule table. The rule table is compiled in, so its side never
// depends on the classifier service being up.
func (s *PredictionService) ModelStatus() *models.ModelStatus {
	status, err := s.mlClient.ModelStatus()
	if err != nil {
		log.Printf("classifier status unavailable: %v", err)
		status = &models.ModelStatus{}
	}
	status.RuleEngine = models.RuleEngineStatus{
		Loaded:         true,
		CropsWithRules: rules.CropCount(),
	}
	return status
}
