package models

// FavoriteItem is not unique per (user, product); repeated adds create repeated rows.
type FavoriteItem struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	UserIdentifier string  `json:"user_identifier" gorm:"size:255;not null;index"`
	ProductID      uint    `json:"product_id" gorm:"not null;index"`
	Product        Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (FavoriteItem) TableName() string {
	return "favorites"
}
