package models

import "time"

type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	ImageBlob string `json:"image_blob" gorm:"type:text;not null"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type Discount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	NewPrice  float64   `json:"new_price" gorm:"not null"`
}

func (Discount) TableName() string {
	return "discounts"
}

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null;check:price >= 0"`
	Discount      *float64  `json:"discount"`
	Description   string    `json:"description" gorm:"type:text"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0"`
	SkuCode       string    `json:"sku_code" gorm:"size:64;not null;uniqueIndex"`
	CreatedAt     time.Time `json:"created_at"`

	Images    []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Discounts []Discount     `json:"discounts,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Types     []ProductType  `json:"types,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tags      []ProductTag   `json:"tags,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "products"
}
