package repository

import (
	"context"

	"oh-crepe-api/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	List(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	SetAvailability(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
	CountAvailable(ctx context.Context) (int64, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) List(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := r.db.WithContext(ctx).Order("category, name")
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update writes the given columns. A map is used so false and zero values are
// written too.
func (r *menuRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{ID: id}).Updates(fields).Error
}

func (r *menuRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{ID: id}).Update("available", available).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}

func (r *menuRepository) CountAvailable(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("available = ?", true).Count(&n).Error
	return n, err
}
