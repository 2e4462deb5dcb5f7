package models

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CategoryInput is the body for create and rename.
type CategoryInput struct {
	Name string `json:"name"`
}

// CategoryPage is one page of the category listing.
type CategoryPage struct {
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int        `json:"total"`
	Categories []Category `json:"categories"`
}

// Pages returns the number of pages implied by Total and Limit.
func (p CategoryPage) Pages() int {
	return pageCount(p.Total, p.Limit)
}

func pageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
