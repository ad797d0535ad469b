package models

type CartItem struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	UserIdentifier string  `json:"user_identifier" gorm:"size:255;not null;index"`
	ProductID      uint    `json:"product_id" gorm:"not null;index"`
	Quantity       int     `json:"quantity" gorm:"not null;check:quantity >= 1"`
	Product        Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string {
	return "cart"
}
