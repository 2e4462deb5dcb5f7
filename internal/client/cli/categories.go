package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
)

var errUsage = errors.New("usage")

// pageArg parses an optional 1-based page number.
func pageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: page must be a positive number", errUsage)
	}
	return page, nil
}

func (a *App) usage(text string) error {
	a.println("Usage:", text)
	return errUsage
}

// Categories prints one page of categories.
func (a *App) Categories(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return a.usage("categories [page]")
	}

	res, err := a.categoryService.List(ctx, &models.QueryParams{Page: page, Limit: a.config.PageSize})
	if err != nil {
		a.report(ctx, "fetching", err)
		return err
	}
	a.printCategories(res)
	return nil
}

func (a *App) printCategories(res models.CategoryPage) {
	if len(res.Categories) == 0 {
		a.println("No categories")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUPDATED")
	for _, c := range res.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.UpdatedAt)
	}
	_ = tw.Flush()
	a.printf("Page %d of %d (%d total)\n", max(res.Page, 1), res.Pages(), res.Total)
}

// Category runs the admin subcommands: add, rename <id>, delete <id>.
func (a *App) Category(ctx context.Context, args []string) error {
	const help = "category add | category rename <id> | category delete <id>"
	if len(args) == 0 {
		return a.usage(help)
	}

	switch args[0] {
	case "add":
		name, err := getSimpleText(a.reader, "Category name", a.out)
		if err != nil {
			return err
		}
		c, err := a.categoryService.Create(ctx, name)
		if err != nil {
			a.report(ctx, "creating", err)
			return err
		}
		a.printf("Created category %s (%s)\n", c.Name, c.ID)

	case "rename":
		if len(args) < 2 {
			return a.usage("category rename <id>")
		}
		name, err := getSimpleText(a.reader, "New name", a.out)
		if err != nil {
			return err
		}
		c, err := a.categoryService.Rename(ctx, args[1], name)
		if err != nil {
			a.report(ctx, "updating", err)
			return err
		}
		a.printf("Renamed category %s to %s\n", args[1], c.Name)

	case "delete":
		if len(args) < 2 {
			return a.usage("category delete <id>")
		}
		ok, err := confirm(a.reader, "Delete category "+args[1]+"?", a.out)
		if err != nil || !ok {
			return err
		}
		if err := a.categoryService.Delete(ctx, args[1]); err != nil {
			a.report(ctx, "deleting", err)
			return err
		}
		a.println("Deleted successfully")

	default:
		return a.usage(help)
	}
	return nil
}
