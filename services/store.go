package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"salonbase-backend/models"
)

// ServiceStore is the relational CRUD layer for service records. It does
// no pagination clamping; that is the manager's job.
type ServiceStore struct {
	db *gorm.DB
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func (s *ServiceStore) Create(ctx context.Context, service *models.Service) error {
	return s.db.WithContext(ctx).Create(service).Error
}

func (s *ServiceStore) Get(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (s *ServiceStore) List(ctx context.Context, offset, limit int) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&services).Error
	return services, err
}

// ListAll returns the full unpaginated listing, used to populate the cache.
func (s *ServiceStore) ListAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).Order("id").Find(&services).Error
	return services, err
}

func (s *ServiceStore) Save(ctx context.Context, service *models.Service) error {
	return s.db.WithContext(ctx).Save(service).Error
}

// Delete removes a record and reports whether a row was actually deleted.
func (s *ServiceStore) Delete(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
