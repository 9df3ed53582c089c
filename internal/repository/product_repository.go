package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"agrisoil-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

type IProductRepository interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id string) (*models.Product, error)
	GetProducts(limit, offset int, category, search string) ([]*models.Product, error)
	UpdateProduct(product *models.Product) error
	SoftDeleteProduct(id string) error
	SearchByKeyword(keyword string, limit int) ([]*models.Product, error)
	DecrementStock(tx *sqlx.Tx, productID string, quantity int) error
	BeginTx() (*sqlx.Tx, error)
}

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) IProductRepository {
	return &ProductRepository{
		db: db,
	}
}

func (r *ProductRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (product_id, name, description, category, price,
		                      stock_quantity, image_url, is_available, created_at, updated_at)
		VALUES (:product_id, :name, :description, :category, :price,
		        :stock_quantity, :image_url, :is_available, :created_at, :updated_at)
	`

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.db.NamedExec(query, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	query := `SELECT * FROM products WHERE product_id = $1`

	err := r.db.Get(&product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetProducts lists available products with optional category and
// keyword filters.
func (r *ProductRepository) GetProducts(limit, offset int, category, search string) ([]*models.Product, error) {
	var products []*models.Product

	query := `SELECT * FROM products WHERE is_available = TRUE`
	args := []any{}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	err := r.db.Select(&products, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	query := `
		UPDATE products
		SET name = :name, description = :description, category = :category,
		    price = :price, stock_quantity = :stock_quantity, image_url = :image_url,
		    is_available = :is_available, updated_at = :updated_at
		WHERE product_id = :product_id
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.NamedExec(query, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

// SoftDeleteProduct hides a product from the catalog instead of
// removing the row, so past orders keep their reference.
func (r *ProductRepository) SoftDeleteProduct(id string) error {
	query := `UPDATE products SET is_available = FALSE, updated_at = $1 WHERE product_id = $2`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

// SearchByKeyword finds in-stock products whose name or description
// mentions the keyword.
func (r *ProductRepository) SearchByKeyword(keyword string, limit int) ([]*models.Product, error) {
	var products []*models.Product
	query := `
		SELECT * FROM products
		WHERE is_available = TRUE AND stock_quantity > 0
		  AND (name ILIKE $1 OR description ILIKE $1)
		LIMIT $2
	`

	pattern := "%" + strings.TrimSpace(strings.ToLower(keyword)) + "%"
	err := r.db.Select(&products, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// DecrementStock reduces stock inside a transaction and fails when the
// remaining stock is insufficient.
func (r *ProductRepository) DecrementStock(tx *sqlx.Tx, productID string, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = $2
		WHERE product_id = $3 AND stock_quantity >= $1
	`

	result, err := tx.Exec(query, quantity, time.Now(), productID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}

	return nil
}

func (r *ProductRepository) BeginTx() (*sqlx.Tx, error) {
	return r.db.Beginx()
}
