package repository

import (
	"context"
	"time"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoMainCategoryRepository struct {
	store mongoCollection[model.MainCategory]
}

func NewMongoMainCategoryRepository(database *mongo.Database) MainCategoryRepository {
	return &mongoMainCategoryRepository{
		store: newMongoCollection[model.MainCategory](database, db.CollectionMainCategories),
	}
}

func (r *mongoMainCategoryRepository) List(ctx context.Context) ([]model.MainCategory, error) {
	return r.store.find(ctx, nil, bson.D{{Key: "name", Value: 1}})
}

func (r *mongoMainCategoryRepository) FindByID(ctx context.Context, id string) (*model.MainCategory, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoMainCategoryRepository) FindByKey(ctx context.Context, key string) (*model.MainCategory, error) {
	return r.store.findOne(ctx, bson.M{"name_key": key})
}

func (r *mongoMainCategoryRepository) FindByName(ctx context.Context, name string) (*model.MainCategory, error) {
	return r.store.findOne(ctx, bson.M{"name": name})
}

func (r *mongoMainCategoryRepository) Create(ctx context.Context, category *model.MainCategory) error {
	// model hooks never touch tx
	_ = category.BeforeCreate(nil)
	_ = category.BeforeSave(nil)
	return r.store.insert(ctx, category)
}

func (r *mongoMainCategoryRepository) Update(ctx context.Context, category *model.MainCategory) error {
	_ = category.BeforeSave(nil)
	category.UpdatedAt = time.Now()
	return r.store.replace(ctx, category.ID, category)
}

func (r *mongoMainCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteOne(ctx, bson.M{"_id": id})
}

type mongoSubCategoryRepository struct {
	store mongoCollection[model.SubCategory]
}

func NewMongoSubCategoryRepository(database *mongo.Database) SubCategoryRepository {
	return &mongoSubCategoryRepository{
		store: newMongoCollection[model.SubCategory](database, db.CollectionSubCategories),
	}
}

func (r *mongoSubCategoryRepository) List(ctx context.Context, mainCategory string) ([]model.SubCategory, error) {
	filter := bson.M{}
	if mainCategory != "" {
		filter["main_category"] = equalFold(mainCategory)
	}
	return r.store.find(ctx, filter, bson.D{{Key: "name", Value: 1}})
}

func (r *mongoSubCategoryRepository) FindByID(ctx context.Context, id string) (*model.SubCategory, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoSubCategoryRepository) FindByNameAndMain(ctx context.Context, name, mainCategory string) (*model.SubCategory, error) {
	return r.store.findOne(ctx, bson.M{"name": name, "main_category": mainCategory})
}

func (r *mongoSubCategoryRepository) Create(ctx context.Context, category *model.SubCategory) error {
	_ = category.BeforeCreate(nil)
	return r.store.insert(ctx, category)
}

func (r *mongoSubCategoryRepository) Update(ctx context.Context, category *model.SubCategory) error {
	category.UpdatedAt = time.Now()
	return r.store.replace(ctx, category.ID, category)
}

func (r *mongoSubCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteOne(ctx, bson.M{"_id": id})
}
