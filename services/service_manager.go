package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"salonbase-backend/models"
)

// maxPageSize caps the listing page size regardless of what the client asks for.
const maxPageSize = 100

// RecordStore is the persistence dependency of the ServiceManager,
// implemented by ServiceStore.
type RecordStore interface {
	Create(ctx context.Context, service *models.Service) error
	Get(ctx context.Context, id uint) (*models.Service, error)
	List(ctx context.Context, offset, limit int) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	Save(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Duration    int       `json:"duration" binding:"min=0"` // in minutes
	Price       float64   `json:"price" binding:"required,min=0"`
	SalonID     uuid.UUID `json:"salon_id" binding:"required"`
	ImageBase64 string    `json:"image_base64"`
}

// UpdateServiceInput defines the expected JSON structure for updating a
// service. Nil fields are left unchanged.
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	ImageBase64 *string  `json:"image_base64"`
	RemoveImage bool     `json:"remove_image"`
}

// DeleteResult is the response shape for delete operations.
type DeleteResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	PublicID *string `json:"public_id"`
}

// ImageUploadResult is the response shape for the dedicated image upload.
type ImageUploadResult struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ServiceManager orchestrates the service-record lifecycle: for each
// mutation it decides which blob-store calls happen, in what order, and
// when the listing cache is invalidated. It owns the invariant that no
// record ever references a deleted blob.
type ServiceManager struct {
	store  RecordStore
	images ImageStore
	cache  ListCache
}

func NewServiceManager(store RecordStore, images ImageStore, cache ListCache) *ServiceManager {
	return &ServiceManager{store: store, images: images, cache: cache}
}

// Create inserts a new service, uploading the optional image first so an
// upload failure leaves no partial record behind.
func (m *ServiceManager) Create(ctx context.Context, input CreateServiceInput) (*models.Service, error) {
	service := &models.Service{
		SalonID:     input.SalonID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Price:       input.Price,
	}

	if input.ImageBase64 != "" {
		result, err := m.images.Upload(ctx, input.ImageBase64, ImageFolder)
		if err != nil {
			return nil, err
		}
		service.ImageURL = &result.URL
	}

	if err := m.store.Create(ctx, service); err != nil {
		return nil, err
	}
	m.cache.Invalidate(ctx)
	return service, nil
}

// List returns one page of the service listing. On a cache miss it fetches
// the full listing, caches it, and slices the page from that; the cache
// never holds a partial page. An empty listing or an out-of-range page is
// reported as ErrNotFound, a deliberate convention inherited from the API
// contract.
func (m *ServiceManager) List(ctx context.Context, offset, limit int) ([]models.Service, error) {
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if cached, ok := m.cache.Get(ctx); ok {
		logrus.Debug("Returning cached services")
		return pageOf(cached, offset, limit)
	}

	services, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		logrus.Warn("No services found")
		return nil, ErrNotFound
	}
	m.cache.Populate(ctx, services)

	return pageOf(services, offset, limit)
}

func pageOf(services []models.Service, offset, limit int) ([]models.Service, error) {
	if offset >= len(services) || limit <= 0 {
		return nil, ErrNotFound
	}
	end := offset + limit
	if end > len(services) {
		end = len(services)
	}
	return services[offset:end], nil
}

// Get fetches a single service by id.
func (m *ServiceManager) Get(ctx context.Context, id uint) (*models.Service, error) {
	return m.store.Get(ctx, id)
}

// Update applies a partial update. Image handling: a removal request wins
// over a new payload; the image reference is only cleared when the host
// confirms the delete; and when a new image replaces an old one, the old
// blob is destroyed only after the record save succeeds, so a failure
// leaves an orphan blob but never a dangling reference.
func (m *ServiceManager) Update(ctx context.Context, id uint, input UpdateServiceInput) (*models.Service, error) {
	service, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Price != nil {
		service.Price = *input.Price
	}

	var replaced string
	switch {
	case input.RemoveImage && service.ImageURL != nil:
		if publicID, ok := m.images.PublicIDFromReference(*service.ImageURL); ok {
			if m.images.Destroy(ctx, publicID) == Deleted {
				service.ImageURL = nil
				logrus.WithField("service_id", id).Info("Deleted service image")
			}
		}
	case input.ImageBase64 != nil && *input.ImageBase64 != "":
		result, err := m.images.Upload(ctx, *input.ImageBase64, ImageFolder)
		if err != nil {
			return nil, err
		}
		if service.ImageURL != nil {
			if publicID, ok := m.images.PublicIDFromReference(*service.ImageURL); ok {
				replaced = publicID
			}
		}
		service.ImageURL = &result.URL
		logrus.WithField("service_id", id).Info("Uploaded new service image")
	}

	if err := m.store.Save(ctx, service); err != nil {
		return nil, err
	}

	if replaced != "" {
		if m.images.Destroy(ctx, replaced) != Deleted {
			logrus.WithField("public_id", replaced).Warn("Replaced image was not removed from the media host")
		}
	}

	m.cache.Invalidate(ctx)
	return service, nil
}

// Delete removes a service and, best-effort, its image blob. The record is
// deleted regardless of the blob outcome.
func (m *ServiceManager) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	service, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var deletedID *string
	if service.ImageURL != nil {
		if publicID, ok := m.images.PublicIDFromReference(*service.ImageURL); ok {
			if m.images.Destroy(ctx, publicID) == Deleted {
				deletedID = &publicID
			} else {
				logrus.WithField("public_id", publicID).Warn("Service image was not removed from the media host")
			}
		}
	}

	removed, err := m.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotFound
	}
	m.cache.Invalidate(ctx)

	count, assets := 0, "none"
	if deletedID != nil {
		count, assets = 1, "image"
	}
	return &DeleteResult{
		Success:  true,
		Message:  fmt.Sprintf("Service deleted successfully. Deleted %d associated assets: %s", count, assets),
		PublicID: deletedID,
	}, nil
}

// UploadImage serves the dedicated upload endpoint. Icons and images land
// in separate folders.
func (m *ServiceManager) UploadImage(ctx context.Context, payload string, isIcon bool) (*ImageUploadResult, error) {
	if payload == "" {
		return nil, &ValidationError{Message: "image_base64 is required"}
	}

	folder := ImageFolder
	if isIcon {
		folder = IconFolder
	}
	result, err := m.images.Upload(ctx, payload, folder)
	if err != nil {
		return nil, err
	}

	logrus.WithField("url", result.URL).Info("Image uploaded successfully")
	return &ImageUploadResult{Success: true, URL: result.URL, PublicID: result.PublicID}, nil
}

// DeleteImage removes a blob addressed directly by reference. The cleaned
// reference must be a bare public ID, not a full delivery URL.
func (m *ServiceManager) DeleteImage(ctx context.Context, ref string) (*DeleteResult, error) {
	publicID, ok := m.images.PublicIDFromReference(ref)
	if !ok {
		publicID = ref
	}
	if strings.Contains(publicID, "http") {
		return nil, &ValidationError{Message: "Please provide only the public_id, not full URL"}
	}

	if m.images.Destroy(ctx, publicID) != Deleted {
		return nil, fmt.Errorf("image %s not found or already deleted: %w", publicID, ErrNotFound)
	}

	return &DeleteResult{
		Success:  true,
		Message:  fmt.Sprintf("Image %s deleted successfully", publicID),
		PublicID: &publicID,
	}, nil
}
