package models

type Content struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	AuthorID  int64  `json:"author_id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Body      string `json:"content"`
	Category  string `json:"category"`
	Photo     string `json:"photo,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ContentInput is the body for creating or editing a content item.
type ContentInput struct {
	Slug     string `json:"slug,omitempty"`
	AuthorID int64  `json:"author_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"content"`
	Category int64  `json:"category,omitempty"`
}

// ContentPage is one page of the content browser.
type ContentPage struct {
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Total    int       `json:"total"`
	Contents []Content `json:"contents"`
}

func (p ContentPage) Pages() int {
	return pageCount(p.Total, p.Limit)
}
