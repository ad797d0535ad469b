package store

import (
	"context"

	"github.com/Kariqs/storefront-api/models"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// session scopes a gorm session to the request context so a cancelled
// request releases its pooled connection.
func (s *GormStore) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func ratingsOnly(db *gorm.DB) *gorm.DB {
	return db.Select("id", "product_id", "rating")
}

// withListing preloads what the flat product view needs.
func withListing(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", orderByID).Preload("Discounts", orderByID)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := withListing(s.session(ctx)).
		Preload("Comments", ratingsOnly).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (s *GormStore) FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := withListing(s.session(ctx)).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (s *GormStore) SearchProducts(ctx context.Context, fragment string) ([]models.Product, error) {
	var products []models.Product
	err := withListing(s.session(ctx)).
		Where("name LIKE ?", "%"+fragment+"%").
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := withListing(s.session(ctx)).
		Preload("Types.Type").
		Preload("Tags.Tag").
		Preload("Comments", newestFirst).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := s.session(ctx).Where("sku_code = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := s.session(ctx).Model(&models.Product{}).Where("sku_code = ?", sku).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateProductImage(ctx context.Context, image *models.ProductImage) error {
	return s.session(ctx).Create(image).Error
}

func (s *GormStore) FindProductImage(ctx context.Context, id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := s.session(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *GormStore) DeleteProductImage(ctx context.Context, id uint) error {
	return deleteOne(s.session(ctx), &models.ProductImage{}, id)
}

// deleteOne reports gorm.ErrRecordNotFound when no row matched.
func deleteOne(db *gorm.DB, model any, id uint) error {
	result := db.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func preloadProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").
		Preload("Product.Images", orderByID).
		Preload("Product.Discounts", orderByID)
}

func (s *GormStore) ListCartItems(ctx context.Context, userIdentifier string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := preloadProduct(s.session(ctx)).
		Where("user_identifier = ?", userIdentifier).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (s *GormStore) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	db := s.session(ctx)
	if err := db.Omit("Product").Create(item).Error; err != nil {
		return err
	}
	return preloadProduct(db).First(item, item.ID).Error
}

func (s *GormStore) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	db := s.session(ctx)
	result := db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}

	var item models.CartItem
	if err := preloadProduct(db).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) DeleteCartItem(ctx context.Context, id uint) error {
	return deleteOne(s.session(ctx), &models.CartItem{}, id)
}

func (s *GormStore) ClearCart(ctx context.Context, userIdentifier string) (int64, error) {
	result := s.session(ctx).Where("user_identifier = ?", userIdentifier).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (s *GormStore) ListFavorites(ctx context.Context, userIdentifier string) ([]models.FavoriteItem, error) {
	var items []models.FavoriteItem
	err := preloadProduct(s.session(ctx)).
		Where("user_identifier = ?", userIdentifier).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (s *GormStore) CreateFavorite(ctx context.Context, item *models.FavoriteItem) error {
	db := s.session(ctx)
	if err := db.Omit("Product").Create(item).Error; err != nil {
		return err
	}
	return preloadProduct(db).First(item, item.ID).Error
}

func (s *GormStore) DeleteFavorite(ctx context.Context, id uint) error {
	return deleteOne(s.session(ctx), &models.FavoriteItem{}, id)
}

func (s *GormStore) ClearFavorites(ctx context.Context, userIdentifier string) (int64, error) {
	result := s.session(ctx).Where("user_identifier = ?", userIdentifier).Delete(&models.FavoriteItem{})
	return result.RowsAffected, result.Error
}

func (s *GormStore) ListComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := newestFirst(s.session(ctx)).Where("product_id = ?", productID).Find(&comments).Error
	return comments, err
}

func (s *GormStore) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.session(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *GormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.session(ctx).Create(comment).Error
}

func (s *GormStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return s.session(ctx).Model(comment).Select("comment", "rating", "edited_at").Updates(comment).Error
}

func (s *GormStore) DeleteComment(ctx context.Context, id uint) error {
	return deleteOne(s.session(ctx), &models.Comment{}, id)
}

func (s *GormStore) ListTypes(ctx context.Context) ([]models.Type, error) {
	var types []models.Type
	err := s.session(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

func (s *GormStore) FindType(ctx context.Context, id uint) (*models.Type, error) {
	var t models.Type
	if err := s.session(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
