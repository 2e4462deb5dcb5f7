package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_ListAndSearch(t *testing.T) {
	ctx := context.Background()

	a := newTestApp(t, "")
	a.items.page = models.ContentPage{
		Page:     1,
		Limit:    10,
		Total:    1,
		Contents: []models.Content{{ID: 5, Title: "Hello", Category: "News", CreatedAt: "2024-02-02"}},
	}
	require.NoError(t, a.Content(ctx, nil))
	assert.Equal(t, &models.QueryParams{Page: 1, Limit: 10}, a.items.params)
	assert.Contains(t, a.out.String(), "5   Hello  News      2024-02-02")
	assert.Contains(t, a.out.String(), "Page 1 of 1 (1 total)")

	a = newTestApp(t, "")
	require.NoError(t, a.Search(ctx, []string{"go", "3"}))
	assert.Equal(t, &models.QueryParams{Title: "go", Category: 3, Page: 1, Limit: 10}, a.items.params)
	assert.Contains(t, a.out.String(), "No content found")

	a = newTestApp(t, "")
	assert.ErrorIs(t, a.Search(ctx, []string{"go", "news"}), errUsage)
	assert.ErrorIs(t, a.Search(ctx, nil), errUsage)
	assert.ErrorIs(t, a.Content(ctx, []string{"-1"}), errUsage)
	assert.Nil(t, a.items.params)
}

func TestShow(t *testing.T) {
	a := newTestApp(t, "")
	a.items.item = models.Content{
		Title:    "Hello",
		Subtitle: "World",
		Body:     "Body text",
		Category: "News",
		AuthorID: 2,
		Slug:     "hello",
		Photo:    "/img/1.png",
	}

	require.NoError(t, a.Show(context.Background(), []string{"7"}))

	out := a.out.String()
	assert.Contains(t, out, "#7 Hello\nWorld\n")
	assert.Contains(t, out, "Category: News  Author: 2  Slug: hello")
	assert.Contains(t, out, "Photo: /img/1.png")
	assert.Contains(t, out, "Body text")

	assert.ErrorIs(t, a.Show(context.Background(), []string{"x"}), errUsage)
}

func TestContent_Add(t *testing.T) {
	a := newTestApp(t, "Hello\nSub\n3\nline1\nline2\n\nphoto.png\n")
	a.setUser(&models.User{ID: 4, Role: models.RoleAdmin})

	require.NoError(t, a.Content(context.Background(), []string{"add"}))

	assert.Equal(t, models.ContentInput{
		AuthorID: 4,
		Title:    "Hello",
		Subtitle: "Sub",
		Body:     "line1\nline2",
		Category: 3,
	}, a.items.created)
	assert.Equal(t, "photo.png", a.items.photo)
	assert.Contains(t, a.out.String(), "Created content #99 Hello")
}

func TestContent_AddRejectsBadCategory(t *testing.T) {
	a := newTestApp(t, "Hello\n\nnews\nbody\n\n")

	assert.Error(t, a.Content(context.Background(), []string{"add"}))
	assert.Empty(t, a.items.created.Title)
	assert.Contains(t, a.out.String(), `Error creating: category id "news" is not a number`)
}

func TestContent_EditKeepsBlankFields(t *testing.T) {
	a := newTestApp(t, "\nNew sub\n\n\n")
	a.items.item = models.Content{Title: "Old", Subtitle: "Old sub", Body: "Old body", Slug: "old", AuthorID: 2}

	require.NoError(t, a.Content(context.Background(), []string{"edit", "8"}))

	assert.Equal(t, models.ContentInput{
		Slug:     "old",
		AuthorID: 2,
		Title:    "Old",
		Subtitle: "New sub",
		Body:     "Old body",
	}, a.items.updated)
	assert.Contains(t, a.out.String(), "Updated content #8 Old")
}

func TestContent_PhotoAndDelete(t *testing.T) {
	ctx := context.Background()

	a := newTestApp(t, "cover.jpg\n")
	require.NoError(t, a.Content(ctx, []string{"photo", "3"}))
	assert.Equal(t, int64(3), a.items.photoID)
	assert.Equal(t, "cover.jpg", a.items.photo)

	a = newTestApp(t, "\n")
	assert.ErrorIs(t, a.Content(ctx, []string{"photo", "3"}), errUsage)

	a = newTestApp(t, "yes\n")
	require.NoError(t, a.Content(ctx, []string{"delete", "6"}))
	assert.Equal(t, int64(6), a.items.deleted)

	a = newTestApp(t, "")
	assert.ErrorIs(t, a.Content(ctx, []string{"delete"}), errUsage)
	assert.ErrorIs(t, a.Content(ctx, []string{"edit", "abc"}), errUsage)
}
