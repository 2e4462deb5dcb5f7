package cli

import (
	"context"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Overview loads the first page of categories and of content concurrently
// and prints a short dashboard. When the access token has expired both
// calls share a single refresh.
func (a *App) Overview(ctx context.Context) error {
	var (
		cats     models.CategoryPage
		contents models.ContentPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cats, err = a.categoryService.List(gctx, &models.QueryParams{Page: 1, Limit: a.config.PageSize})
		return err
	})
	g.Go(func() error {
		var err error
		contents, err = a.contentService.List(gctx, &models.QueryParams{Page: 1, Limit: a.config.PageSize})
		return err
	})
	if err := g.Wait(); err != nil {
		a.report(ctx, "fetching", err)
		return err
	}

	a.printf("Categories: %d\n", cats.Total)
	a.printf("Content:    %d\n", contents.Total)
	if len(contents.Contents) > 0 {
		a.println("Latest:")
		for _, c := range contents.Contents {
			a.printf("  #%d %s\n", c.ID, c.Title)
		}
	}
	return nil
}
