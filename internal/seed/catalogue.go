// Package seed loads the starter catalogue and writes it to the stores.
package seed

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imrishuroy/go-storefront-admin/internal/blog"
	"github.com/imrishuroy/go-storefront-admin/internal/products"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
)

//go:embed catalogue.yaml
var defaultCatalogue []byte

// Product is a catalogue entry for the products collection.
type Product struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Price       float64 `yaml:"price"`
	Image       string  `yaml:"image"`
	Description string  `yaml:"description"`
	InStock     bool    `yaml:"inStock"`
	Featured    bool    `yaml:"featured"`
	Brand       string  `yaml:"brand"`
	Subtitle    string  `yaml:"subtitle"`
}

// Service is a catalogue entry for the services collection.
type Service struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Category    string  `yaml:"category"`
	Price       float64 `yaml:"price"`
	Duration    string  `yaml:"duration"`
	Description string  `yaml:"description"`
	Image       string  `yaml:"image"`
}

// Post is a catalogue entry for the blog collection.
type Post struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Excerpt   string `yaml:"excerpt"`
	Content   string `yaml:"content"`
	Author    string `yaml:"author"`
	Date      string `yaml:"date"`
	Image     string `yaml:"image"`
	Category  string `yaml:"category"`
	Published bool   `yaml:"published"`
}

// Catalogue is the full seed document.
type Catalogue struct {
	Products []Product `yaml:"products"`
	Services []Service `yaml:"services"`
	Posts    []Post    `yaml:"blog_posts"`
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	return parse(defaultCatalogue)
}

// Read decodes a catalogue from r.
func Read(r io.Reader) (*Catalogue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// check rejects entries without ids and duplicate ids within a collection.
func (c *Catalogue) check() error {
	seen := map[string]bool{}
	add := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("catalogue: %s entry without id", kind)
		}
		if seen[kind+"/"+id] {
			return fmt.Errorf("catalogue: duplicate %s id %q", kind, id)
		}
		seen[kind+"/"+id] = true
		return nil
	}
	for _, p := range c.Products {
		if err := add("product", p.ID); err != nil {
			return err
		}
	}
	for _, s := range c.Services {
		if err := add("service", s.ID); err != nil {
			return err
		}
	}
	for _, p := range c.Posts {
		if err := add("blog post", p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (p Product) document(now time.Time) products.Product {
	return products.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		InStock:     p.InStock,
		Featured:    p.Featured,
		Brand:       p.Brand,
		Subtitle:    p.Subtitle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s Service) document(now time.Time) services.Service {
	return services.Service{
		ID:          s.ID,
		Title:       s.Title,
		Category:    s.Category,
		Price:       s.Price,
		Duration:    s.Duration,
		Description: s.Description,
		Image:       s.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p Post) document(now time.Time) blog.Post {
	return blog.Post{
		ID:        p.ID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Author:    p.Author,
		Date:      p.Date,
		Image:     p.Image,
		Category:  p.Category,
		Published: p.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
