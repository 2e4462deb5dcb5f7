package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

func idArg(args []string, i int) (int64, bool) {
	if len(args) <= i {
		return 0, false
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	return id, err == nil && id > 0
}

// Content lists a page of content, or runs one of the admin subcommands
// add, edit <id>, photo <id>, delete <id>.
func (a *App) Content(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return a.contentAdd(ctx)
		case "edit":
			return a.contentEdit(ctx, args)
		case "photo":
			return a.contentPhoto(ctx, args)
		case "delete":
			return a.contentDelete(ctx, args)
		}
	}

	page, err := pageArg(args)
	if err != nil {
		return a.usage("content [page] | content add | content edit <id> | content photo <id> | content delete <id>")
	}
	return a.listContent(ctx, &models.QueryParams{Page: page, Limit: a.config.PageSize})
}

// Search lists content whose title matches, optionally within a category.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("search <title> [category-id]")
	}

	params := &models.QueryParams{Title: args[0], Page: 1, Limit: a.config.PageSize}
	if len(args) > 1 {
		cat, ok := idArg(args, 1)
		if !ok {
			return a.usage("search <title> [category-id]")
		}
		params.Category = cat
	}
	return a.listContent(ctx, params)
}

func (a *App) listContent(ctx context.Context, params *models.QueryParams) error {
	res, err := a.contentService.List(ctx, params)
	if err != nil {
		a.report(ctx, "fetching", err)
		return err
	}
	a.printContents(res)
	return nil
}

func (a *App) printContents(res models.ContentPage) {
	if len(res.Contents) == 0 {
		a.println("No content found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tCREATED")
	for _, c := range res.Contents {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Title, c.Category, c.CreatedAt)
	}
	_ = tw.Flush()
	a.printf("Page %d of %d (%d total)\n", max(res.Page, 1), res.Pages(), res.Total)
}

// Show prints a single content item.
func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := idArg(args, 0)
	if !ok {
		return a.usage("show <id>")
	}

	c, err := a.contentService.Get(ctx, id)
	if err != nil {
		a.report(ctx, "fetching", err)
		return err
	}

	a.printf("#%d %s\n", c.ID, c.Title)
	if c.Subtitle != "" {
		a.println(c.Subtitle)
	}
	a.printf("Category: %s  Author: %d  Slug: %s\n", c.Category, c.AuthorID, c.Slug)
	if c.Photo != "" {
		a.printf("Photo: %s\n", c.Photo)
	}
	a.println(strings.Repeat("-", 40))
	a.println(c.Body)
	return nil
}

func (a *App) readContentInput(current *models.Content) (models.ContentInput, error) {
	var in models.ContentInput
	var err error

	hint := func(label, value string) string {
		if current == nil || value == "" {
			return label
		}
		return fmt.Sprintf("%s (empty keeps %q)", label, value)
	}
	keep := func(v, old string) string {
		if v == "" && current != nil {
			return old
		}
		return v
	}

	var title, subtitle, body, category string
	var oldTitle, oldSubtitle, oldBody, oldCategory string
	bodyPrompt := "Content"
	if current != nil {
		oldTitle, oldSubtitle, oldBody, oldCategory = current.Title, current.Subtitle, current.Body, current.Category
		bodyPrompt = "Content (empty keeps the current text)"
		in.Slug, in.AuthorID = current.Slug, current.AuthorID
	}

	if title, err = getSimpleText(a.reader, hint("Title", oldTitle), a.out); err != nil {
		return in, err
	}
	if subtitle, err = getSimpleText(a.reader, hint("Subtitle", oldSubtitle), a.out); err != nil {
		return in, err
	}
	if category, err = getSimpleText(a.reader, hint("Category ID", oldCategory), a.out); err != nil {
		return in, err
	}
	if body, err = getMultiline(a.reader, bodyPrompt, a.out); err != nil {
		return in, err
	}

	in.Title = keep(title, oldTitle)
	in.Subtitle = keep(subtitle, oldSubtitle)
	in.Body = keep(body, oldBody)
	if category != "" {
		if in.Category, err = strconv.ParseInt(category, 10, 64); err != nil {
			return in, fmt.Errorf("category id %q is not a number", category)
		}
	}
	if u := a.currentUser(); u != nil && in.AuthorID == 0 {
		in.AuthorID = u.ID
	}
	return in, nil
}

func (a *App) contentAdd(ctx context.Context) error {
	in, err := a.readContentInput(nil)
	if err != nil {
		a.report(ctx, "creating", err)
		return err
	}
	photo, err := getSimpleText(a.reader, "Photo file (optional)", a.out)
	if err != nil {
		return err
	}

	c, err := a.contentService.Create(ctx, in, photo)
	if err != nil {
		a.report(ctx, "creating", err)
		return err
	}
	a.printf("Created content #%d %s\n", c.ID, c.Title)
	return nil
}

func (a *App) contentEdit(ctx context.Context, args []string) error {
	id, ok := idArg(args, 1)
	if !ok {
		return a.usage("content edit <id>")
	}

	current, err := a.contentService.Get(ctx, id)
	if err != nil {
		a.report(ctx, "fetching", err)
		return err
	}

	in, err := a.readContentInput(&current)
	if err != nil {
		a.report(ctx, "updating", err)
		return err
	}

	c, err := a.contentService.Update(ctx, id, in)
	if err != nil {
		a.report(ctx, "updating", err)
		return err
	}
	a.printf("Updated content #%d %s\n", c.ID, c.Title)
	return nil
}

func (a *App) contentPhoto(ctx context.Context, args []string) error {
	id, ok := idArg(args, 1)
	if !ok {
		return a.usage("content photo <id>")
	}
	path, err := getSimpleText(a.reader, "Photo file", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return a.usage("content photo <id> (a file is required)")
	}

	if _, err := a.contentService.UpdatePhoto(ctx, id, path); err != nil {
		a.report(ctx, "updating", err)
		return err
	}
	a.println("Photo updated")
	return nil
}

func (a *App) contentDelete(ctx context.Context, args []string) error {
	id, ok := idArg(args, 1)
	if !ok {
		return a.usage("content delete <id>")
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete content #%d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.contentService.Delete(ctx, id); err != nil {
		a.report(ctx, "deleting", err)
		return err
	}
	a.println("Deleted successfully")
	return nil
}
