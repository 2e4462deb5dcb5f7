package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

const CategoriesEndpoint = "/categories"

var ErrEmptyName = errors.New("name must not be empty")

// CategoryService manages content categories.
type CategoryService interface {
	List(ctx context.Context, params *models.QueryParams) (models.CategoryPage, error)
	Create(ctx context.Context, name string) (models.Category, error)
	Rename(ctx context.Context, id, name string) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	res *Resource[models.CategoryPage, models.Category]
}

func NewCategoryService(c client.Client, logger logging.Logger) CategoryService {
	return &categoryService{res: NewResource[models.CategoryPage, models.Category](c, CategoriesEndpoint, logger)}
}

func (s *categoryService) List(ctx context.Context, params *models.QueryParams) (models.CategoryPage, error) {
	return s.res.List(ctx, params)
}

func (s *categoryService) Create(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrEmptyName
	}
	return s.res.Create(ctx, models.CategoryInput{Name: name})
}

func (s *categoryService) Rename(ctx context.Context, id, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrEmptyName
	}
	return s.res.Update(ctx, id, models.CategoryInput{Name: name})
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	return s.res.Delete(ctx, id)
}
