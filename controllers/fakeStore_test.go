package controllers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
	"gorm.io/gorm"
)

// fakeStore is an in-memory store.Store. Relations are resolved on read
// from the flat tables, the way the gorm preloads do.
type fakeStore struct {
	mu sync.Mutex

	products  map[uint]models.Product
	images    map[uint]models.ProductImage
	discounts []models.Discount
	types     map[uint]models.Type
	cart      map[uint]models.CartItem
	favorites map[uint]models.FavoriteItem
	comments  map[uint]models.Comment

	nextID    uint
	mutations int
	err       error
}

var _ store.Store = (*fakeStore)(nil)

var errStoreDown = errors.New("store down")

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[uint]models.Product{},
		images:    map[uint]models.ProductImage{},
		types:     map[uint]models.Type{},
		cart:      map[uint]models.CartItem{},
		favorites: map[uint]models.FavoriteItem{},
		comments:  map[uint]models.Comment{},
		nextID:    100,
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addProduct(p models.Product) {
	s.products[p.ID] = p
}

func (s *fakeStore) addImage(img models.ProductImage) {
	s.images[img.ID] = img
}

func (s *fakeStore) addDiscount(d models.Discount) {
	s.discounts = append(s.discounts, d)
}

func (s *fakeStore) addComment(c models.Comment) {
	s.comments[c.ID] = c
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *fakeStore) hydrate(p models.Product, withComments bool) models.Product {
	p.Images = nil
	for _, id := range sortedKeys(s.images) {
		if img := s.images[id]; img.ProductID == p.ID {
			p.Images = append(p.Images, img)
		}
	}
	p.Discounts = nil
	for _, d := range s.discounts {
		if d.ProductID == p.ID {
			p.Discounts = append(p.Discounts, d)
		}
	}
	p.Comments = nil
	if withComments {
		for _, id := range sortedKeys(s.comments) {
			if c := s.comments[id]; c.ProductID == p.ID {
				p.Comments = append(p.Comments, c)
			}
		}
		sort.SliceStable(p.Comments, func(i, j int) bool {
			return p.Comments[i].CreatedAt.After(p.Comments[j].CreatedAt)
		})
	}
	return p
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return s.err
}

func (s *fakeStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Product
	for _, id := range sortedKeys(s.products) {
		out = append(out, s.hydrate(s.products[id], true))
	}
	return out, nil
}

func (s *fakeStore) FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Product
	for _, id := range sortedKeys(s.products) {
		for _, want := range ids {
			if id == want {
				out = append(out, s.hydrate(s.products[id], false))
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) SearchProducts(ctx context.Context, fragment string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Product
	for _, id := range sortedKeys(s.products) {
		if p := s.products[id]; strings.Contains(p.Name, fragment) {
			out = append(out, s.hydrate(p, false))
		}
	}
	return out, nil
}

func (s *fakeStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	hydrated := s.hydrate(p, true)
	return &hydrated, nil
}

func (s *fakeStore) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.SkuCode == sku {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) SKUExists(ctx context.Context, sku string) (bool, error) {
	_, err := s.FindProductBySKU(ctx, sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeStore) CreateProductImage(ctx context.Context, image *models.ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mutations++
	image.ID = s.id()
	s.images[image.ID] = *image
	return nil
}

func (s *fakeStore) FindProductImage(ctx context.Context, id uint) (*models.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	img, ok := s.images[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &img, nil
}

func (s *fakeStore) DeleteProductImage(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.images[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.mutations++
	delete(s.images, id)
	return nil
}

func (s *fakeStore) ListCartItems(ctx context.Context, userIdentifier string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.CartItem
	for _, id := range sortedKeys(s.cart) {
		if item := s.cart[id]; item.UserIdentifier == userIdentifier {
			item.Product = s.hydrate(s.products[item.ProductID], false)
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mutations++
	item.ID = s.id()
	s.cart[item.ID] = *item
	item.Product = s.hydrate(s.products[item.ProductID], false)
	return nil
}

func (s *fakeStore) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.cart[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.mutations++
	item.Quantity = quantity
	s.cart[id] = item
	item.Product = s.hydrate(s.products[item.ProductID], false)
	return &item, nil
}

func (s *fakeStore) DeleteCartItem(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.cart[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.mutations++
	delete(s.cart, id)
	return nil
}

func (s *fakeStore) ClearCart(ctx context.Context, userIdentifier string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.mutations++
	var n int64
	for id, item := range s.cart {
		if item.UserIdentifier == userIdentifier {
			delete(s.cart, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) ListFavorites(ctx context.Context, userIdentifier string) ([]models.FavoriteItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.FavoriteItem
	for _, id := range sortedKeys(s.favorites) {
		if item := s.favorites[id]; item.UserIdentifier == userIdentifier {
			item.Product = s.hydrate(s.products[item.ProductID], false)
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateFavorite(ctx context.Context, item *models.FavoriteItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mutations++
	item.ID = s.id()
	s.favorites[item.ID] = *item
	item.Product = s.hydrate(s.products[item.ProductID], false)
	return nil
}

func (s *fakeStore) DeleteFavorite(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.favorites[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.mutations++
	delete(s.favorites, id)
	return nil
}

func (s *fakeStore) ClearFavorites(ctx context.Context, userIdentifier string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.mutations++
	var n int64
	for id, item := range s.favorites {
		if item.UserIdentifier == userIdentifier {
			delete(s.favorites, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) ListComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Comment
	for _, id := range sortedKeys(s.comments) {
		if c := s.comments[id]; c.ProductID == productID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *fakeStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mutations++
	comment.ID = s.id()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.mutations++
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeStore) DeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.mutations++
	delete(s.comments, id)
	return nil
}

func (s *fakeStore) ListTypes(ctx context.Context) ([]models.Type, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Type
	for _, id := range sortedKeys(s.types) {
		out = append(out, s.types[id])
	}
	return out, nil
}

func (s *fakeStore) FindType(ctx context.Context, id uint) (*models.Type, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}
