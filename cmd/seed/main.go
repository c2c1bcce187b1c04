package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymstore/internal/config"
	"gymstore/internal/db"
	"gymstore/internal/model"
	"gymstore/internal/repository"
)

// SeedProductData is the JSON shape of one catalog entry in the seed file.
type SeedProductData struct {
	Nombre      string  `json:"nombre"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Stock       int     `json:"stock"`
	Descripcion string  `json:"descripcion"`
	Imagen      string  `json:"imagen"`
}

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	entries, err := loadSeedProducts(os.Getenv("SEED_FILE"))
	if err != nil {
		log.Fatalf("load seed products: %v", err)
	}

	created, skipped, err := seedProducts(ctx, gormDB, productRepo, entries)
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New products created: %d", created)
	log.Printf("  - Existing products skipped: %d", skipped)
}

// seedAdmin creates the admin user if it does not already exist.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@gymstore.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")
	name := getEnv("ADMIN_NAME", "Administrator")

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Printf("Admin user %s created", email)
	return nil
}

// loadSeedProducts reads catalog entries from a JSON file, falling back to
// the built-in starter catalog when no file is given.
func loadSeedProducts(path string) ([]SeedProductData, error) {
	if path == "" {
		return defaultProducts(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []SeedProductData
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return entries, nil
}

// seedProducts inserts catalog entries, skipping names already present.
func seedProducts(ctx context.Context, gormDB *gorm.DB, repo repository.ProductRepository, entries []SeedProductData) (created int, skipped int, err error) {
	for _, entry := range entries {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Product{}).
			Where("name = ?", entry.Nombre).Count(&count).Error; err != nil {
			return created, skipped, fmt.Errorf("check product %q: %w", entry.Nombre, err)
		}
		if count > 0 {
			skipped++
			continue
		}

		product := &model.Product{
			Name:        entry.Nombre,
			Price:       decimal.NewFromFloat(entry.Precio),
			Category:    entry.Categoria,
			Stock:       entry.Stock,
			Description: entry.Descripcion,
			Image:       entry.Imagen,
		}
		if err := repo.Create(ctx, product); err != nil {
			return created, skipped, fmt.Errorf("create product %q: %w", entry.Nombre, err)
		}
		created++
	}
	return created, skipped, nil
}

func defaultProducts() []SeedProductData {
	return []SeedProductData{
		{Nombre: "Whey Protein 2kg", Precio: 45.99, Categoria: "proteinas", Stock: 50, Descripcion: "Concentrado de suero de leche, sabor chocolate.", Imagen: "/static/img/whey.jpg"},
		{Nombre: "Creatina Monohidratada 500g", Precio: 25.50, Categoria: "creatinas", Stock: 80, Descripcion: "Creatina micronizada sin sabor.", Imagen: "/static/img/creatina.jpg"},
		{Nombre: "BCAA 2:1:1", Precio: 19.90, Categoria: "aminoacidos", Stock: 60, Descripcion: "Aminoacidos ramificados, sabor limon.", Imagen: "/static/img/bcaa.jpg"},
		{Nombre: "Pre-entreno Fuego", Precio: 32.00, Categoria: "preentrenos", Stock: 40, Descripcion: "Formula con cafeina y beta-alanina.", Imagen: "/static/img/preentreno.jpg"},
		{Nombre: "Multivitaminico Sport", Precio: 15.75, Categoria: "vitaminas", Stock: 100, Descripcion: "Complejo diario para deportistas.", Imagen: "/static/img/multi.jpg"},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
