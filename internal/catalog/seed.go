package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/martin-vega/tienda-backend/pkg/db/models"
)

// Fixtures returns the demo catalog used for local development.
func Fixtures() []models.Product {
	return []models.Product{
		{
			Name:        "Laptop HP 15",
			Description: "Laptop HP 15\" con procesador Intel Core i5, 8GB RAM, 256GB SSD",
			Price:       decimal.NewFromFloat(699.99),
			Stock:       15,
			ImageURL:    ptr("https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Mouse Logitech MX Master 3",
			Description: "Mouse inalámbrico ergonómico con precisión de seguimiento avanzada",
			Price:       decimal.NewFromFloat(99.99),
			Stock:       50,
			ImageURL:    ptr("https://images.unsplash.com/photo-1527814050087-3793815479db?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Teclado Mecánico RGB",
			Description: "Teclado mecánico con switches azules y retroiluminación RGB",
			Price:       decimal.NewFromFloat(129.99),
			Stock:       30,
			ImageURL:    ptr("https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Monitor Samsung 27\"",
			Description: "Monitor 27\" Full HD con tecnología IPS y 75Hz",
			Price:       decimal.NewFromFloat(249.99),
			Stock:       20,
			ImageURL:    ptr("https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Webcam HD 1080p",
			Description: "Cámara web con resolución Full HD y micrófono incorporado",
			Price:       decimal.NewFromFloat(59.99),
			Stock:       40,
			ImageURL:    ptr("https://images.unsplash.com/photo-1526598319457-f040c10e2c00?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Auriculares Sony WH-1000XM4",
			Description: "Auriculares inalámbricos con cancelación de ruido líder en la industria",
			Price:       decimal.NewFromFloat(349.99),
			Stock:       25,
			ImageURL:    ptr("https://images.unsplash.com/photo-1545127398-14699f92334b?w=400"),
			IsActive:    true,
		},
		{
			Name:        "SSD Samsung 1TB",
			Description: "Unidad de estado sólido NVMe de 1TB con velocidades de hasta 3500 MB/s",
			Price:       decimal.NewFromFloat(119.99),
			Stock:       35,
			ImageURL:    ptr("https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Router WiFi 6 TP-Link",
			Description: "Router de doble banda con tecnología WiFi 6 y cobertura de hasta 200m²",
			Price:       decimal.NewFromFloat(89.99),
			Stock:       45,
			ImageURL:    ptr("https://images.unsplash.com/photo-1606904825846-647eb07f5be2?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Hub USB-C 7 en 1",
			Description: "Adaptador multipuerto con HDMI, USB 3.0, lector SD y carga rápida",
			Price:       decimal.NewFromFloat(39.99),
			Stock:       60,
			ImageURL:    ptr("https://images.unsplash.com/photo-1625948515291-69613efd103f?w=400"),
			IsActive:    true,
		},
		{
			Name:        "Mochila Laptop 17\"",
			Description: "Mochila resistente al agua con compartimento acolchado para laptop",
			Price:       decimal.NewFromFloat(49.99),
			Stock:       55,
			ImageURL:    ptr("https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400"),
			IsActive:    true,
		},
	}
}

// SeedResult reports what the seeder did per product name.
type SeedResult struct {
	Created []string
	Skipped []string
}

// Seed inserts the demo fixtures, skipping products that already exist by
// name so it can run repeatedly.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var result SeedResult

	for _, fixture := range Fixtures() {
		var count int64
		if err := db.WithContext(ctx).
			Model(&models.Product{}).
			Where("name = ?", fixture.Name).
			Count(&count).Error; err != nil {
			return result, err
		}
		if count > 0 {
			result.Skipped = append(result.Skipped, fixture.Name)
			continue
		}
		product := fixture
		if err := db.WithContext(ctx).Create(&product).Error; err != nil {
			return result, err
		}
		result.Created = append(result.Created, fixture.Name)
	}

	return result, nil
}

func ptr(s string) *string {
	return &s
}
