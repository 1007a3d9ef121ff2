package repository

import (
	"context"
	"time"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoProductRepository struct {
	store mongoCollection[model.Product]
}

func NewMongoProductRepository(database *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		store: newMongoCollection[model.Product](database, db.CollectionProducts),
	}
}

func (r *mongoProductRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = equalFold(filter.Category)
	}
	if filter.MainCategory != "" {
		query["main_category"] = equalFold(filter.MainCategory)
	}
	if filter.SubCategory != "" {
		query["sub_category"] = equalFold(filter.SubCategory)
	}
	return r.store.find(ctx, query, bson.D{{Key: "created_at", Value: -1}})
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	_ = product.BeforeCreate(nil)
	return r.store.insert(ctx, product)
}

func (r *mongoProductRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()
	return r.store.replace(ctx, product.ID, product)
}

func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteOne(ctx, bson.M{"_id": id})
}
