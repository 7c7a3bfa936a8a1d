package blog

import "time"

// Post is a blog article. Date is the display date chosen by the author and
// is unrelated to CreatedAt.
type Post struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Excerpt   string    `json:"excerpt" dynamodbav:"excerpt"`
	Content   string    `json:"content" dynamodbav:"content"`
	Author    string    `json:"author" dynamodbav:"author"`
	Date      string    `json:"date" dynamodbav:"date"`
	Image     string    `json:"image" dynamodbav:"image"`
	Category  string    `json:"category" dynamodbav:"category"`
	Published bool      `json:"published" dynamodbav:"published"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewPost is the payload for POST /blog. Published defaults to true.
type NewPost struct {
	Title     string `json:"title" validate:"notblank"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content" validate:"notblank"`
	Author    string `json:"author" validate:"notblank"`
	Date      string `json:"date"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Published *bool  `json:"published"`
}

// Patch is the payload for PUT /blog/{id}.
type Patch struct {
	Title     *string `json:"title" validate:"omitempty,notblank"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content" validate:"omitempty,notblank"`
	Author    *string `json:"author" validate:"omitempty,notblank"`
	Date      *string `json:"date"`
	Image     *string `json:"image"`
	Category  *string `json:"category"`
	Published *bool   `json:"published"`
}

// Apply merges the supplied fields into p.
func (pt Patch) Apply(p *Post) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{pt.Title, &p.Title},
		{pt.Excerpt, &p.Excerpt},
		{pt.Content, &p.Content},
		{pt.Author, &p.Author},
		{pt.Date, &p.Date},
		{pt.Image, &p.Image},
		{pt.Category, &p.Category},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if pt.Published != nil {
		p.Published = *pt.Published
	}
}
