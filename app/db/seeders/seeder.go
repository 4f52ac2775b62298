package seeders

import (
	"github.com/dsdryfruits/storefront/app/db/fakers"
	"github.com/dsdryfruits/storefront/app/helpers"
	"github.com/dsdryfruits/storefront/app/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedAdminEmail = "admin@dsdryfruits.in"

// DBSeed fills an empty database with a default admin account and a sample
// catalog. Existing rows are left alone.
func DBSeed(db *gorm.DB) error {
	admin := &models.User{
		ID:       uuid.New().String(),
		Name:     "Administrator",
		Email:    seedAdminEmail,
		Password: helpers.HashPassword("changeme"),
		Role:     models.RoleAdmin,
	}
	if err := db.FirstOrCreate(admin, "email = ?", seedAdminEmail).Error; err != nil {
		return err
	}
	zap.S().Warnf("seed admin account is %s with the default password; change it", seedAdminEmail)

	themeIndex := 0
	for _, name := range fakers.ThemeNames() {
		theme := fakers.ThemeFaker(name)
		if err := db.FirstOrCreate(theme, "name = ?", name).Error; err != nil {
			return err
		}

		productNames := fakers.ProductNames()
		for i := 0; i < 2; i++ {
			productName := productNames[(themeIndex*2+i)%len(productNames)]
			product := fakers.ProductFaker(theme, productName)
			if err := db.FirstOrCreate(product, "name = ? AND theme_id = ?", productName, theme.ID).Error; err != nil {
				return err
			}
		}
		themeIndex++
	}

	return nil
}
