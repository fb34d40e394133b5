package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/5ecured/e-commerce/models"
)

// ProductQuery describes a catalog read. Zero values impose no constraint.
type ProductQuery struct {
	SortBy       string
	Order        string // "asc" or "desc"
	Limit        int64  // 0 means unlimited (driver semantics)
	Skip         int64
	Category     primitive.ObjectID   // single-category equality
	Categories   []primitive.ObjectID // exact-match set
	PriceMin     *float64             // inclusive lower bound
	PriceMax     *float64             // inclusive upper bound
	NameContains string               // case-insensitive substring
	Exclude      primitive.ObjectID   // id omitted from results
}

// StockAdjustment is one entry of the stock ledger batch.
type StockAdjustment struct {
	ProductID     primitive.ObjectID
	QuantityDelta int
	SoldDelta     int
}

// ProductRepository defines the data access surface for products. Reads never
// return the photo payload except FindPhoto.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	FindPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error)
	Search(ctx context.Context, q ProductQuery) ([]models.Product, error)
	DistinctCategories(ctx context.Context) ([]primitive.ObjectID, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	AdjustStock(ctx context.Context, adjustments []StockAdjustment) error
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

var photoExcluded = bson.M{"photo": 0}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	opts := options.FindOne().SetProjection(photoExcluded)
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	opts := options.Find().SetProjection(photoExcluded)
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) FindPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	opts := options.FindOne().SetProjection(bson.M{"photo": 1})
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&product); err != nil {
		return nil, err
	}
	return product.Photo, nil
}

func (r *MongoProductRepository) Search(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	findOptions := options.Find().
		SetProjection(photoExcluded).
		SetSort(sortSpec(q.SortBy, q.Order))
	// Limit passes straight through: 0 is unlimited per driver semantics.
	if q.Limit != 0 {
		findOptions.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		findOptions.SetSkip(q.Skip)
	}

	cursor, err := r.collection.Find(ctx, searchFilter(q), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) DistinctCategories(ctx context.Context) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MongoProductRepository) Insert(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	updates["updated_at"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// AdjustStock applies the ledger deltas as a single bulk submission. Each
// document update inside the batch is independently applied; ids that match
// no product are silently skipped by the store.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, adjustments []StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	ops := make([]mongo.WriteModel, 0, len(adjustments))
	for _, a := range adjustments {
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": a.ProductID}).
			SetUpdate(bson.M{"$inc": bson.M{
				"quantity": a.QuantityDelta,
				"sold":     a.SoldDelta,
			}}))
	}
	_, err := r.collection.BulkWrite(ctx, ops)
	return err
}

// searchFilter translates a ProductQuery into a Mongo filter document. Empty
// constraint sets are dropped rather than matched against.
func searchFilter(q ProductQuery) bson.M {
	filter := bson.M{}
	if !q.Category.IsZero() {
		filter["category"] = q.Category
	}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	if q.PriceMin != nil || q.PriceMax != nil {
		price := bson.M{}
		if q.PriceMin != nil {
			price["$gte"] = *q.PriceMin
		}
		if q.PriceMax != nil {
			price["$lte"] = *q.PriceMax
		}
		filter["price"] = price
	}
	if q.NameContains != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.NameContains), Options: "i"}
	}
	if !q.Exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": q.Exclude}
	}
	return filter
}

// sortSpec builds the sort document. An unknown sort field passes through
// uninterpreted, matching the store's no-op behavior.
func sortSpec(sortBy, order string) bson.D {
	if sortBy == "" {
		sortBy = "_id"
	}
	dir := 1
	if order == "desc" {
		dir = -1
	}
	return bson.D{{Key: sortBy, Value: dir}}
}
