package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

const pdfDataURLPrefix = "data:application/pdf"

// ResourceStore is the persistence surface the resource service needs.
// Update applies the editable fields to the stored row with the same
// id; Delete reports the deleted resource's course id.
type ResourceStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
	Update(ctx context.Context, resource *models.Resource) (bool, error)
	Delete(ctx context.Context, id string) (courseID string, found bool, err error)
}

// ResourceService owns resource CRUD plus the ordering merge on reads.
type ResourceService struct {
	store  ResourceStore
	orders *OrderService
	limits config.LimitsConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewResourceService constructs the service.
func NewResourceService(store ResourceStore, orders *OrderService, limits config.LimitsConfig, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{store: store, orders: orders, limits: limits, logger: logger, now: time.Now}
}

// List returns a course's resources in display order.
func (s *ResourceService) List(ctx context.Context, courseID string) ([]models.Resource, error) {
	courseID, err := requiredText("courseId", courseID, s.limits.MaxTitleLength)
	if err != nil {
		return nil, err
	}

	resources, err := s.store.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list resources")
	}

	storedOrder, err := s.orders.StoredOrder(ctx, models.EntityResources, courseID)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return MergeOrdered(resources, storedOrder), nil
}

// Create validates and persists a resource. PDFs must arrive as
// application/pdf data URLs; links must be absolute http(s) URLs.
func (s *ResourceService) Create(ctx context.Context, req dto.CreateResourceRequest) (models.Resource, error) {
	courseID, err := requiredText("courseId", req.CourseID, s.limits.MaxTitleLength)
	if err != nil {
		return models.Resource{}, err
	}
	title, err := requiredText("title", req.Title, s.limits.MaxTitleLength)
	if err != nil {
		return models.Resource{}, err
	}

	resourceType, rawURL, err := s.validateTypeAndURL(req.Type, req.URL)
	if err != nil {
		return models.Resource{}, err
	}

	resource := models.Resource{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Type:      resourceType,
		Title:     title,
		URL:       rawURL,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, &resource); err != nil {
		return models.Resource{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create resource")
	}

	if err := s.orders.RecordCreate(ctx, models.EntityResources, courseID, resource.ID); err != nil {
		s.logger.Warn("order bookkeeping failed after resource create",
			zap.String("resource_id", resource.ID), zap.Error(err))
	}
	return resource, nil
}

func (s *ResourceService) validateTypeAndURL(rawType, rawURL string) (models.ResourceType, string, error) {
	resourceType := models.ResourceType(strings.ToUpper(strings.TrimSpace(rawType)))
	if !resourceType.Valid() {
		return "", "", appErrors.Clone(appErrors.ErrInvalidInput, `field "type" must be "PDF" or "LIEN"`)
	}

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", "", appErrors.Clone(appErrors.ErrInvalidInput, `field "url" cannot be empty`)
	}
	if len(rawURL) > s.limits.MaxURLLength {
		return "", "", tooLarge("url", s.limits.MaxURLLength)
	}
	switch resourceType {
	case models.ResourceTypePDF:
		if !strings.HasPrefix(rawURL, pdfDataURLPrefix) {
			return "", "", appErrors.Clone(appErrors.ErrInvalidInput, `field "url" must be an application/pdf data URL for PDF resources`)
		}
	case models.ResourceTypeLink:
		if !isValidHTTPURL(rawURL) {
			return "", "", appErrors.Clone(appErrors.ErrInvalidInput, `field "url" must be an absolute http(s) URL for link resources`)
		}
	}
	return resourceType, rawURL, nil
}

// Update edits a resource's title, type and url under the same rules
// as Create. The id, course and creation timestamp stay fixed, so the
// stored display order is untouched.
func (s *ResourceService) Update(ctx context.Context, id string, req dto.UpdateResourceRequest) (models.Resource, error) {
	if id == "" {
		return models.Resource{}, appErrors.Clone(appErrors.ErrInvalidInput, `field "id" cannot be empty`)
	}
	title, err := requiredText("title", req.Title, s.limits.MaxTitleLength)
	if err != nil {
		return models.Resource{}, err
	}
	resourceType, rawURL, err := s.validateTypeAndURL(req.Type, req.URL)
	if err != nil {
		return models.Resource{}, err
	}

	resource := models.Resource{ID: id, Type: resourceType, Title: title, URL: rawURL}
	found, err := s.store.Update(ctx, &resource)
	if err != nil {
		return models.Resource{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update resource")
	}
	if !found {
		return models.Resource{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("resource %q not found", id))
	}
	return resource, nil
}

// Delete removes a resource and drops it from the display order. The
// course is resolved from the deleted row itself.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrInvalidInput, `field "id" cannot be empty`)
	}

	courseID, found, err := s.store.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete resource")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("resource %q not found", id))
	}

	if err := s.orders.RecordDelete(ctx, models.EntityResources, courseID, id); err != nil {
		s.logger.Warn("order bookkeeping failed after resource delete",
			zap.String("resource_id", id), zap.Error(err))
	}
	return nil
}
