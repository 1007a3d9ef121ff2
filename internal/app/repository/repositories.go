package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/db"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories bundles one repository per aggregate for a single backend.
type Repositories struct {
	MainCategories MainCategoryRepository
	SubCategories  SubCategoryRepository
	Products       ProductRepository
	Banners        BannerRepository
	Handpicked     HandpickedRepository
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		MainCategories: NewMainCategoryRepository(db),
		SubCategories:  NewSubCategoryRepository(db),
		Products:       NewProductRepository(db),
		Banners:        NewBannerRepository(db),
		Handpicked:     NewHandpickedRepository(db),
	}
}

func NewMongoRepositories(database *mongo.Database) Repositories {
	return Repositories{
		MainCategories: NewMongoMainCategoryRepository(database),
		SubCategories:  NewMongoSubCategoryRepository(database),
		Products:       NewMongoProductRepository(database),
		Banners:        NewMongoBannerRepository(database),
		Handpicked:     NewMongoHandpickedRepository(database),
	}
}

// DefaultMainCategories are created by SeedMainCategories.
var DefaultMainCategories = []string{"Necklaces", "Earrings", "Rings", "Bracelets"}

// Open connects to the backend named by cfg.Driver, binds its schema once
// and returns its repositories together with the matching close function.
// The default main categories are only seeded when cfg.SeedCategories is set.
func Open(cfg *config.DatabaseConfig) (Repositories, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		repos   Repositories
		closeFn func() error
	)

	switch cfg.Driver {
	case "mongo":
		if err := db.ConnectMongo(cfg); err != nil {
			return Repositories{}, nil, err
		}
		if err := db.EnsureMongoIndexes(ctx, db.GetMongo()); err != nil {
			_ = db.DisconnectMongo()
			return Repositories{}, nil, err
		}
		repos, closeFn = NewMongoRepositories(db.GetMongo()), db.DisconnectMongo

	case "postgres":
		if err := db.ConnectPostgres(cfg); err != nil {
			return Repositories{}, nil, err
		}
		if err := db.MigrateDB(db.GetPostgres()); err != nil {
			_ = db.DisconnectPostgres()
			return Repositories{}, nil, err
		}
		repos, closeFn = NewGormRepositories(db.GetPostgres()), db.DisconnectPostgres

	default:
		return Repositories{}, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	seedOnStartup(ctx, cfg, repos.MainCategories)
	return repos, closeFn, nil
}

func seedOnStartup(ctx context.Context, cfg *config.DatabaseConfig, repo MainCategoryRepository) {
	if !cfg.SeedCategories {
		return
	}
	if err := SeedMainCategories(ctx, repo); err != nil {
		logger.Warn("Failed to seed main categories", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// SeedMainCategories creates the default main categories when the registry
// is empty.
func SeedMainCategories(ctx context.Context, repo MainCategoryRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range DefaultMainCategories {
		if err := repo.Create(ctx, &model.MainCategory{Name: name}); err != nil {
			return err
		}
	}
	logger.Info("Main categories seeded successfully", map[string]interface{}{
		"total": len(DefaultMainCategories),
	})
	return nil
}
