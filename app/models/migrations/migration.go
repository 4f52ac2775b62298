package migrations

import (
	"github.com/dsdryfruits/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Theme{}, &models.Product{})
}
