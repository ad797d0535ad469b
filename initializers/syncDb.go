package initializers

import (
	"github.com/Kariqs/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Discount{},
		&models.Type{},
		&models.Tag{},
		&models.ProductType{},
		&models.ProductTag{},
		&models.CartItem{},
		&models.FavoriteItem{},
		&models.Comment{},
	)
	if err != nil {
		return err
	}
	log.Info().Msg("database synced successfully")
	return nil
}
