package repository

import (
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"gorm.io/gorm"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListActive returns all active task definitions
func (r *GormCatalogRepository) ListActive() ([]models.TaskDefinition, error) {
	var tasks []models.TaskDefinition
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task definition by ID
func (r *GormCatalogRepository) FindByID(id uint64) (*models.TaskDefinition, error) {
	var task models.TaskDefinition
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
