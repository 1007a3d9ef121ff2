package repository

import (
	"context"
	"time"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoBannerRepository struct {
	store mongoCollection[model.Banner]
}

func NewMongoBannerRepository(database *mongo.Database) BannerRepository {
	return &mongoBannerRepository{
		store: newMongoCollection[model.Banner](database, db.CollectionBanners),
	}
}

func (r *mongoBannerRepository) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.store.find(ctx, filter, bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
}

func (r *mongoBannerRepository) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	return r.store.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoBannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	_ = banner.BeforeCreate(nil)
	return r.store.insert(ctx, banner)
}

func (r *mongoBannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	banner.UpdatedAt = time.Now()
	return r.store.replace(ctx, banner.ID, banner)
}

func (r *mongoBannerRepository) Delete(ctx context.Context, id string) error {
	return r.store.deleteOne(ctx, bson.M{"_id": id})
}

type mongoHandpickedRepository struct {
	store mongoCollection[model.HandpickedItem]
}

func NewMongoHandpickedRepository(database *mongo.Database) HandpickedRepository {
	return &mongoHandpickedRepository{
		store: newMongoCollection[model.HandpickedItem](database, db.CollectionHandpicked),
	}
}

func (r *mongoHandpickedRepository) List(ctx context.Context) ([]model.HandpickedItem, error) {
	return r.store.find(ctx, nil, bson.D{{Key: "slot", Value: 1}})
}

func (r *mongoHandpickedRepository) FindBySlot(ctx context.Context, slot model.HandpickedSlot) (*model.HandpickedItem, error) {
	return r.store.findOne(ctx, bson.M{"slot": slot})
}

func (r *mongoHandpickedRepository) Create(ctx context.Context, item *model.HandpickedItem) error {
	_ = item.BeforeCreate(nil)
	return r.store.insert(ctx, item)
}

func (r *mongoHandpickedRepository) Update(ctx context.Context, item *model.HandpickedItem) error {
	item.UpdatedAt = time.Now()
	return r.store.replace(ctx, item.ID, item)
}

func (r *mongoHandpickedRepository) DeleteBySlot(ctx context.Context, slot model.HandpickedSlot) error {
	return r.store.deleteOne(ctx, bson.M{"slot": slot})
}
