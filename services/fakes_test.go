package services

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

var errNotFoundFake = errors.New("not found")

// callLog records cross-fake call ordering for sequencing assertions.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) {
	if l != nil {
		l.calls = append(l.calls, name)
	}
}

// --- fake product repository ---

type fakeProductRepo struct {
	products    []models.Product
	photos      map[primitive.ObjectID]*models.Photo
	searchCalls int
	lastQuery   repository.ProductQuery
	searchErr   error
	adjustErr   error
	log         *callLog
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, errNotFoundFake
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindPhoto(_ context.Context, id primitive.ObjectID) (*models.Photo, error) {
	for _, p := range f.products {
		if p.ID == id {
			return f.photos[id], nil
		}
	}
	return nil, errNotFoundFake
}

// Search mirrors the store's filter semantics over the in-memory slice:
// inclusive price bounds, exact-match sets, case-insensitive substring.
func (f *fakeProductRepo) Search(_ context.Context, q repository.ProductQuery) ([]models.Product, error) {
	f.searchCalls++
	f.lastQuery = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	out := []models.Product{}
	for _, p := range f.products {
		if !q.Category.IsZero() && p.Category != q.Category {
			continue
		}
		if len(q.Categories) > 0 && !containsID(q.Categories, p.Category) {
			continue
		}
		if q.PriceMin != nil && p.Price < *q.PriceMin {
			continue
		}
		if q.PriceMax != nil && p.Price > *q.PriceMax {
			continue
		}
		if q.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.NameContains)) {
			continue
		}
		if !q.Exclude.IsZero() && p.ID == q.Exclude {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.SortBy, q.Order)

	if q.Skip > 0 {
		if q.Skip >= int64(len(out)) {
			out = []models.Product{}
		} else {
			out = out[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeProductRepo) DistinctCategories(_ context.Context) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, p := range f.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			ids = append(ids, p.Category)
		}
	}
	return ids, nil
}

func (f *fakeProductRepo) Insert(_ context.Context, product *models.Product) error {
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) (int64, error) {
	for _, p := range f.products {
		if p.ID == id {
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// AdjustStock applies the deltas like the store's bulk update would:
// unmatched ids are silently skipped.
func (f *fakeProductRepo) AdjustStock(_ context.Context, adjustments []repository.StockAdjustment) error {
	f.log.record("stock.adjust")
	if f.adjustErr != nil {
		return f.adjustErr
	}
	for _, a := range adjustments {
		for i := range f.products {
			if f.products[i].ID == a.ProductID {
				f.products[i].Quantity += a.QuantityDelta
				f.products[i].Sold += a.SoldDelta
			}
		}
	}
	return nil
}

func (f *fakeProductRepo) byID(id primitive.ObjectID) *models.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i]
		}
	}
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sortProducts(products []models.Product, sortBy, order string) {
	desc := order == "desc"
	less := func(a, b models.Product) bool { return false }
	switch sortBy {
	case "", "_id":
		less = func(a, b models.Product) bool { return bytes.Compare(a.ID[:], b.ID[:]) < 0 }
	case "sold":
		less = func(a, b models.Product) bool { return a.Sold < b.Sold }
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "createdAt", "created_at":
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// --- fake category repository ---

type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, errNotFoundFake
}

func (f *fakeCategoryRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.categories {
		if containsID(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) Insert(_ context.Context, category *models.Category) error {
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryRepo) UpdateName(_ context.Context, id primitive.ObjectID, name string) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = name
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// --- fake user repository ---

type fakeUserRepo struct {
	users      map[primitive.ObjectID]*models.User
	insertErr  error
	historyErr error
	log        *callLog
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errNotFoundFake
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errNotFoundFake
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errNotFoundFake
	}
	if name, ok := updates["name"].(string); ok {
		u.Name = name
	}
	if address, ok := updates["address"].(string); ok {
		u.Address = address
	}
	if hashed, ok := updates["hashed_password"].(string); ok {
		u.HashedPassword = hashed
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) AppendHistory(_ context.Context, id primitive.ObjectID, records []models.PurchaseRecord) error {
	f.log.record("user.history")
	if f.historyErr != nil {
		return f.historyErr
	}
	if u, ok := f.users[id]; ok {
		u.History = append(u.History, records...)
	}
	return nil
}

// --- fake order repository ---

type fakeOrderRepo struct {
	orders []models.Order
	log    *callLog
}

func (f *fakeOrderRepo) Insert(_ context.Context, order *models.Order) error {
	f.log.record("order.insert")
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	out := append([]models.Order{}, f.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	return out, nil
}

func (f *fakeOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.User == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (int64, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}
