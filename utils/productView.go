package utils

import (
	"math"
	"time"

	"github.com/Kariqs/storefront-api/models"
)

// NoPhotoURL is served as imageUrl for products without images.
const NoPhotoURL = "/noPhoto.png"

type ProductView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Discount      *float64  `json:"discount,omitempty"`
	Description   string    `json:"description"`
	StockQuantity int       `json:"stock_quantity"`
	SkuCode       string    `json:"sku_code"`
	CreatedAt     time.Time `json:"created_at"`
	ImageURL      string    `json:"imageUrl"`
	AverageRating *float64  `json:"average_rating,omitempty"`
}

type ImageView struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type TypeView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CommentView struct {
	ID             uint       `json:"id"`
	UserIdentifier string     `json:"user_identifier"`
	Comment        string     `json:"comment"`
	Rating         float64    `json:"rating"`
	CreatedAt      time.Time  `json:"created_at"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
}

// ProductDetailView is the full shape returned for a single product.
type ProductDetailView struct {
	ProductView
	CurrentDiscount *float64      `json:"current_discount,omitempty"`
	Images          []ImageView   `json:"images"`
	Types           []TypeView    `json:"types"`
	Tags            []TagView     `json:"tags"`
	Comments        []CommentView `json:"comments"`
}

// AverageRating returns the mean of ratings rounded to one decimal, or 0
// for an empty list.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return math.Round(sum/float64(len(ratings))*10) / 10
}

// Thumbnail returns the location of the first image, which the store
// orders by id.
func Thumbnail(images []models.ProductImage) string {
	if len(images) == 0 {
		return NoPhotoURL
	}
	return images[0].ImageBlob
}

// FormatProduct builds the flat product view. Images and discounts must be
// ordered by id. When ratings is non-nil the view carries average_rating.
func FormatProduct(product models.Product, ratings []float64, now time.Time) ProductView {
	view := ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Description:   product.Description,
		StockQuantity: product.StockQuantity,
		SkuCode:       product.SkuCode,
		CreatedAt:     product.CreatedAt,
		ImageURL:      Thumbnail(product.Images),
	}
	if d := ActiveDiscount(product.Discounts, now); d != nil {
		price := d.NewPrice
		view.Discount = &price
	}
	if ratings != nil {
		avg := AverageRating(ratings)
		view.AverageRating = &avg
	}
	return view
}

// Ratings collects the ratings of the product's loaded comments. It never
// returns nil so that the formatted view always carries average_rating.
func Ratings(comments []models.Comment) []float64 {
	ratings := make([]float64, 0, len(comments))
	for _, c := range comments {
		ratings = append(ratings, c.Rating)
	}
	return ratings
}

// FormatProductDetail builds the single-product view with its images, types,
// tags and comments. Comments are expected newest first.
func FormatProductDetail(product models.Product, now time.Time) ProductDetailView {
	view := ProductDetailView{
		ProductView: FormatProduct(product, Ratings(product.Comments), now),
		Images:      make([]ImageView, 0, len(product.Images)),
		Types:       make([]TypeView, 0, len(product.Types)),
		Tags:        make([]TagView, 0, len(product.Tags)),
		Comments:    make([]CommentView, 0, len(product.Comments)),
	}

	view.CurrentDiscount = view.Discount
	if view.CurrentDiscount == nil {
		view.CurrentDiscount = product.Discount
	}

	for _, img := range product.Images {
		view.Images = append(view.Images, ImageView{ID: img.ID, URL: img.ImageBlob})
	}
	for _, pt := range product.Types {
		view.Types = append(view.Types, TypeView{ID: pt.Type.ID, Name: pt.Type.Name, Image: pt.Type.ImageBlob})
	}
	for _, pt := range product.Tags {
		view.Tags = append(view.Tags, TagView{ID: pt.Tag.ID, Name: pt.Tag.Name})
	}
	for _, c := range product.Comments {
		view.Comments = append(view.Comments, CommentView{
			ID:             c.ID,
			UserIdentifier: c.UserIdentifier,
			Comment:        c.Comment,
			Rating:         c.Rating,
			CreatedAt:      c.CreatedAt,
			EditedAt:       c.EditedAt,
		})
	}
	return view
}
