// Seed loads a starter catalog into MySQL. Safe to re-run: it only
// inserts when the products table is empty.
package main

import (
	"context"
	"fmt"

	"github.com/example/bakeshop/pkg/config"
	"github.com/example/bakeshop/pkg/models"
	"github.com/example/bakeshop/pkg/repository"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	repo, err := repository.NewProductRepository(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	ctx := context.Background()
	existing, total, err := repo.List(ctx, repository.ProductFilter{Limit: 1})
	if err != nil {
		logger.Fatal("Failed to inspect catalog", zap.Error(err))
	}
	if total > 0 || len(existing) > 0 {
		logger.Info("Catalog already seeded, nothing to do", zap.Int64("products", total))
		return
	}

	for _, p := range sampleCatalog() {
		product := p
		if err := repo.Create(ctx, &product); err != nil {
			logger.Fatal("Failed to seed product", zap.String("name", p.Name), zap.Error(err))
		}
		logger.Info("Seeded product", zap.String("id", product.ID), zap.String("name", product.Name))
	}
	logger.Info("Catalog seeded")
}

func sampleCatalog() []models.Product {
	return []models.Product{
		{
			Name:             "Midnight Belgian Chocolate Cake",
			Category:         models.CategoryCakes,
			Price:            24.99,
			OriginalPrice:    29.99,
			Rating:           4.8,
			Reviews:          124,
			Image:            "/media/Midnight-Belgian-Chocolate-Cake.png",
			ShortDescription: "Dense Belgian chocolate sponge with dark ganache.",
			Features:         []string{"72% Belgian couverture", "Eggless option"},
			Specifications:   map[string]string{"Weight": "1kg", "Serves": "8-10"},
			Featured:         true,
			ProductType:      models.ProductTypeJustArrived,
			InStock:          true,
			IsFresh:          true,
			FreshnessTag:     "Baked this morning",
		},
		{
			Name:             "Sourdough Country Loaf",
			Category:         models.CategoryBreads,
			Price:            6.50,
			OriginalPrice:    6.50,
			Rating:           4.6,
			Reviews:          88,
			Image:            "/media/sourdough-country-loaf.png",
			ShortDescription: "48-hour fermented sourdough with a blistered crust.",
			Features:         []string{"Naturally leavened"},
			Specifications:   map[string]string{"Weight": "800g"},
			Featured:         true,
			ProductType:      models.ProductTypeJustBaked,
			InStock:          true,
			IsFresh:          true,
		},
		{
			Name:             "Butter Croissant Box",
			Category:         models.CategoryPastries,
			Price:            11.00,
			OriginalPrice:    14.00,
			Rating:           4.9,
			Reviews:          203,
			Image:            "/media/butter-croissant-box.png",
			ShortDescription: "Six laminated croissants, baked to order.",
			Specifications:   map[string]string{"Count": "6"},
			Featured:         true,
			ProductType:      models.ProductTypeJustBaked,
			InStock:          true,
		},
		{
			Name:             "Double Fudge Brownie Tray",
			Category:         models.CategoryBrownies,
			Price:            9.75,
			OriginalPrice:    9.75,
			Rating:           4.4,
			Reviews:          51,
			Image:            "/media/double-fudge-brownie-tray.png",
			ShortDescription: "Fudgy center, crackled top, walnut crunch.",
			ProductType:      models.ProductTypeRegular,
			InStock:          false,
		},
	}
}
