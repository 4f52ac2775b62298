package repositories

import (
	"context"

	"github.com/dsdryfruits/storefront/app/models"
	"gorm.io/gorm"
)

type ThemeRepositoryImpl interface {
	Create(ctx context.Context, theme *models.Theme) error
	GetAll(ctx context.Context) ([]models.Theme, error)
	GetByID(ctx context.Context, id string) (*models.Theme, error)
	GetBySlug(ctx context.Context, slug string) (*models.Theme, error)
	GetByName(ctx context.Context, name string) (*models.Theme, error)
}

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepositoryImpl {
	return &themeRepository{db: db}
}

func (r *themeRepository) Create(ctx context.Context, theme *models.Theme) error {
	err := r.db.WithContext(ctx).Create(theme).Error
	if isDuplicateEntry(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *themeRepository) GetAll(ctx context.Context) ([]models.Theme, error) {
	var themes []models.Theme
	err := r.db.WithContext(ctx).Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepository) GetByID(ctx context.Context, id string) (*models.Theme, error) {
	var theme models.Theme
	err := r.db.WithContext(ctx).First(&theme, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) GetBySlug(ctx context.Context, slug string) (*models.Theme, error) {
	var theme models.Theme
	err := r.db.WithContext(ctx).First(&theme, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) GetByName(ctx context.Context, name string) (*models.Theme, error) {
	var theme models.Theme
	err := r.db.WithContext(ctx).First(&theme, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}
