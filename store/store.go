// Package store is the persistence boundary for the API. Handlers receive a
// Store instead of reaching for a process-wide database handle, so tests can
// substitute an in-memory implementation.
package store

import (
	"context"

	"github.com/Kariqs/storefront-api/models"
)

// Store is implemented by GormStore. Lookups of a single missing row return
// gorm.ErrRecordNotFound, and so do deletes that affect no row.
type Store interface {
	Ping(ctx context.Context) error

	// ListProducts loads every product with images, discounts and comment ratings.
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	SearchProducts(ctx context.Context, fragment string) ([]models.Product, error)
	// GetProduct loads one product with images, discounts, types, tags and
	// comments (newest first).
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	FindProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)

	CreateProductImage(ctx context.Context, image *models.ProductImage) error
	FindProductImage(ctx context.Context, id uint) (*models.ProductImage, error)
	DeleteProductImage(ctx context.Context, id uint) error

	ListCartItems(ctx context.Context, userIdentifier string) ([]models.CartItem, error)
	// CreateCartItem inserts item and reloads it with its product.
	CreateCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uint) error
	ClearCart(ctx context.Context, userIdentifier string) (int64, error)

	ListFavorites(ctx context.Context, userIdentifier string) ([]models.FavoriteItem, error)
	// CreateFavorite inserts item and reloads it with its product.
	CreateFavorite(ctx context.Context, item *models.FavoriteItem) error
	DeleteFavorite(ctx context.Context, id uint) error
	ClearFavorites(ctx context.Context, userIdentifier string) (int64, error)

	ListComments(ctx context.Context, productID uint) ([]models.Comment, error)
	FindComment(ctx context.Context, id uint) (*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error

	ListTypes(ctx context.Context) ([]models.Type, error)
	FindType(ctx context.Context, id uint) (*models.Type, error)
}
