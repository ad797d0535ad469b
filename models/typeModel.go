package models

type Type struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	ImageBlob string `json:"image_blob" gorm:"type:text"`
}

func (Type) TableName() string {
	return "types"
}

type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// ProductType links a product to one of its types.
type ProductType struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"not null;index"`
	TypeID    uint `json:"type_id" gorm:"not null;index"`
	Type      Type `json:"type" gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE"`
}

func (ProductType) TableName() string {
	return "product_types"
}

// ProductTag links a product to one of its tags.
type ProductTag struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"not null;index"`
	TagID     uint `json:"tag_id" gorm:"not null;index"`
	Tag       Tag  `json:"tag" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (ProductTag) TableName() string {
	return "product_tags"
}
