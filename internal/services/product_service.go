package services

import (
	"fmt"
	"log"
	"strings"

	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/repository"
	"agrisoil-backend/utils"
)

const (
	defaultCropSearchLimit = 5
	relatedProductsLimit   = 6
	perCropProductLimit    = 3
)

type IProductService interface {
	CreateProduct(req models.CreateProductRequest) (*models.Product, error)
	GetProduct(id string) (*models.Product, error)
	GetProducts(limit, offset int, category, search string) ([]*models.Product, error)
	UpdateProduct(id string, req models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(id string) error
	SearchByCrop(cropName string, limit int) ([]*models.Product, error)
	GetRelatedProducts(cropNames []string, limit int) ([]*models.Product, error)
}

type ProductService struct {
	productRepo repository.IProductRepository
}

func NewProductService(productRepo repository.IProductRepository) IProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ProductID:     "PR-" + utils.GenerateRandomStringWithLength(8),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsAvailable:   true,
	}
	if req.ImageURL != "" {
		product.ImageURL = &req.ImageURL
	}

	if err := s.productRepo.CreateProduct(product); err != nil {
		log.Printf("failed to create product %s: %v", req.Name, err)
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetProductByID(id)
}

func (s *ProductService) GetProducts(limit, offset int, category, search string) ([]*models.Product, error) {
	return s.productRepo.GetProducts(limit, offset, category, search)
}

func (s *ProductService) UpdateProduct(id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("stock quantity cannot be negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.productRepo.UpdateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.SoftDeleteProduct(id)
}

// SearchByCrop finds in-stock products whose name or description
// mentions the crop. It backs the shop suggestions shown with an
// analysis result.
func (s *ProductService) SearchByCrop(cropName string, limit int) ([]*models.Product, error) {
	cropName = strings.TrimSpace(cropName)
	if cropName == "" {
		return []*models.Product{}, nil
	}
	if limit <= 0 {
		limit = defaultCropSearchLimit
	}

	return s.productRepo.SearchByKeyword(cropName, limit)
}

// GetRelatedProducts collects products for several crops, a few per
// crop and deduplicated, until the overall limit is reached.
func (s *ProductService) GetRelatedProducts(cropNames []string, limit int) ([]*models.Product, error) {
	if limit <= 0 {
		limit = relatedProductsLimit
	}

	related := []*models.Product{}
	seen := map[string]bool{}

	for _, crop := range cropNames {
		crop = strings.TrimSpace(crop)
		if crop == "" {
			continue
		}

		products, err := s.productRepo.SearchByKeyword(crop, perCropProductLimit)
		if err != nil {
			log.Printf("product search for crop %q failed: %v", crop, err)
			continue
		}

		for _, product := range products {
			if seen[product.ProductID] {
				continue
			}
			seen[product.ProductID] = true
			related = append(related, product)
			if len(related) >= limit {
				return related, nil
			}
		}
	}

	return related, nil
}
