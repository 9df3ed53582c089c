package services

import (
	"strings"
	"testing"

	"agrisoil-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo serves a fixed catalogue keyed by product name.
type fakeProductRepo struct {
	products []*models.Product
}

func (f *fakeProductRepo) CreateProduct(product *models.Product) error { return nil }

func (f *fakeProductRepo) GetProductByID(id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeProductRepo) GetProducts(limit, offset int, category, search string) ([]*models.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) UpdateProduct(product *models.Product) error { return nil }
func (f *fakeProductRepo) SoftDeleteProduct(id string) error           { return nil }

func (f *fakeProductRepo) SearchByKeyword(keyword string, limit int) ([]*models.Product, error) {
	matches := []*models.Product{}
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			matches = append(matches, p)
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func (f *fakeProductRepo) DecrementStock(tx *sqlx.Tx, productID string, quantity int) error {
	return nil
}

func (f *fakeProductRepo) BeginTx() (*sqlx.Tx, error) { return nil, nil }

func catalogue() []*models.Product {
	return []*models.Product{
		{ProductID: "PR-1", Name: "Rice Seeds Premium", IsAvailable: true, StockQuantity: 10},
		{ProductID: "PR-2", Name: "Rice Fertilizer Mix", IsAvailable: true, StockQuantity: 10},
		{ProductID: "PR-3", Name: "Wheat Seeds", IsAvailable: true, StockQuantity: 10},
		{ProductID: "PR-4", Name: "Wheat and Rice Sprayer", IsAvailable: true, StockQuantity: 10},
		{ProductID: "PR-5", Name: "Maize Starter Kit", IsAvailable: true, StockQuantity: 10},
	}
}

func TestGetRelatedProductsDeduplicates(t *testing.T) {
	service := NewProductService(&fakeProductRepo{products: catalogue()})

	// "Wheat and Rice Sprayer" matches both crops but must appear once.
	related, err := service.GetRelatedProducts([]string{"rice", "wheat"}, 6)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range related {
		assert.False(t, seen[p.ProductID], "product %s returned twice", p.ProductID)
		seen[p.ProductID] = true
	}
	assert.Contains(t, seen, "PR-4")
}

func TestGetRelatedProductsHonoursLimit(t *testing.T) {
	service := NewProductService(&fakeProductRepo{products: catalogue()})

	related, err := service.GetRelatedProducts([]string{"rice", "wheat", "maize"}, 2)
	require.NoError(t, err)
	assert.Len(t, related, 2)
}

func TestGetRelatedProductsSkipsBlankCrops(t *testing.T) {
	service := NewProductService(&fakeProductRepo{products: catalogue()})

	related, err := service.GetRelatedProducts([]string{"", "  ", "maize"}, 6)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "PR-5", related[0].ProductID)
}

func TestSearchByCropEmptyNameReturnsNothing(t *testing.T) {
	service := NewProductService(&fakeProductRepo{products: catalogue()})

	products, err := service.SearchByCrop("   ", 5)
	require.NoError(t, err)
	assert.Empty(t, products)
}
