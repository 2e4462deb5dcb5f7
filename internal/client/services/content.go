package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

const (
	ContentEndpoint      = "/content"
	ContentPhotoEndpoint = "/content/photo"
)

var ErrEmptyTitle = errors.New("title must not be empty")

// ContentService manages content items.
type ContentService interface {
	List(ctx context.Context, params *models.QueryParams) (models.ContentPage, error)
	Get(ctx context.Context, id int64) (models.Content, error)
	// Create uploads the item as form data; photoPath is optional.
	Create(ctx context.Context, in models.ContentInput, photoPath string) (models.Content, error)
	Update(ctx context.Context, id int64, in models.ContentInput) (models.Content, error)
	UpdatePhoto(ctx context.Context, id int64, photoPath string) (models.Content, error)
	Delete(ctx context.Context, id int64) error
}

type contentService struct {
	res *Resource[models.ContentPage, models.Content]
}

func NewContentService(c client.Client, logger logging.Logger) ContentService {
	return &contentService{res: NewResource[models.ContentPage, models.Content](c, ContentEndpoint, logger)}
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *contentService) List(ctx context.Context, params *models.QueryParams) (models.ContentPage, error) {
	return s.res.List(ctx, params)
}

func (s *contentService) Get(ctx context.Context, id int64) (models.Content, error) {
	return s.res.Get(ctx, idString(id))
}

func (s *contentService) Create(ctx context.Context, in models.ContentInput, photoPath string) (models.Content, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Content{}, ErrEmptyTitle
	}

	authorID := in.AuthorID
	if authorID == 0 {
		authorID = 1
	}

	form := &client.Multipart{Fields: map[string]string{
		"author_id": idString(authorID),
		"title":     in.Title,
		"subtitle":  in.Subtitle,
		"content":   in.Body,
		"category":  idString(in.Category),
	}}
	if in.Slug != "" {
		form.Fields["slug"] = in.Slug
	}
	if photoPath != "" {
		part, err := client.FileFromPath("photo", photoPath)
		if err != nil {
			return models.Content{}, err
		}
		form.Files = append(form.Files, part)
	}

	return s.res.Create(ctx, form)
}

func (s *contentService) Update(ctx context.Context, id int64, in models.ContentInput) (models.Content, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Content{}, ErrEmptyTitle
	}
	return s.res.Update(ctx, idString(id), in)
}

func (s *contentService) UpdatePhoto(ctx context.Context, id int64, photoPath string) (models.Content, error) {
	part, err := client.FileFromPath("photo", photoPath)
	if err != nil {
		return models.Content{}, err
	}
	return s.res.update(ctx, ContentPhotoEndpoint+"/"+idString(id), &client.Multipart{Files: []client.FilePart{part}})
}

func (s *contentService) Delete(ctx context.Context, id int64) error {
	return s.res.Delete(ctx, idString(id))
}
