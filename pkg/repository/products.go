package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/bakeshop/pkg/config"
	"github.com/example/bakeshop/pkg/models"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter mirrors the /products query parameters. Zero values mean
// the filter is absent.
type ProductFilter struct {
	Category string
	Search   string
	Featured *bool
	Type     string
	Page     int
	Limit    int
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(cfg *config.MySQLConfig) (*ProductRepository, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// Auto migrate
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &ProductRepository{db: db}, nil
}

// NewProductRepositoryWithDB wraps an already-open gorm handle.
func NewProductRepositoryWithDB(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		query = query.Where("product_type = ?", f.Type)
	}
	if f.Featured != nil {
		query = query.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		query = searchClause(query, f.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit)
		if f.Page > 1 {
			query = query.Offset((f.Page - 1) * f.Limit)
		}
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) Search(ctx context.Context, q string) ([]models.Product, error) {
	var products []models.Product
	query := searchClause(r.db.WithContext(ctx).Model(&models.Product{}), q)
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func searchClause(query *gorm.DB, q string) *gorm.DB {
	pattern := "%" + strings.ToLower(q) + "%"
	return query.Where(
		"LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(short_description) LIKE ?",
		pattern, pattern, pattern,
	)
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// updatableColumns whitelists PUT body fields. The map approach keeps
// explicit false/zero values (inStock, discount) updatable.
var updatableColumns = map[string]string{
	"name":             "name",
	"category":         "category",
	"price":            "price",
	"originalPrice":    "original_price",
	"discount":         "discount",
	"rating":           "rating",
	"reviews":          "reviews",
	"image":            "image",
	"shortDescription": "short_description",
	"fullDescription":  "full_description",
	"features":         "features",
	"specifications":   "specifications",
	"featured":         "featured",
	"productType":      "product_type",
	"inStock":          "in_stock",
	"freshnessTag":     "freshness_tag",
	"isFresh":          "is_fresh",
}

// Update applies the changed fields from a PUT body and returns the
// updated record.
func (r *ProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	product, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	for name, value := range fields {
		if column, ok := updatableColumns[name]; ok {
			updates[column] = normalizeColumnValue(column, value)
		}
	}

	if err := r.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return r.Get(ctx, id)
}

// normalizeColumnValue re-encodes list/map values for the JSON-serialized
// columns, since Updates bypasses the model serializer for plain maps.
func normalizeColumnValue(column string, value interface{}) interface{} {
	switch column {
	case "features", "specifications":
		return gormJSON(value)
	}
	return value
}

func gormJSON(value interface{}) interface{} {
	data, err := json.Marshal(value)
	if err != nil {
		return value
	}
	return string(data)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
