package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/imrishuroy/go-storefront-admin/internal/blog"
	"github.com/imrishuroy/go-storefront-admin/internal/products"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
)

// Summary counts what a Run wrote and removed per collection.
type Summary struct {
	Products, Services, Posts int
	Cleared                   int
}

// Seeder writes a catalogue into the stores.
type Seeder struct {
	Products *products.Store
	Services *services.Store
	Blog     *blog.Store
	Logger   *zap.Logger
	nowFunc  func() time.Time
}

// NewSeeder returns a Seeder over the given stores.
func NewSeeder(p *products.Store, s *services.Store, b *blog.Store, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.L()
	}
	return &Seeder{Products: p, Services: s, Blog: b, Logger: logger, nowFunc: time.Now}
}

// Run upserts every catalogue entry, one goroutine per collection. With
// reset, each collection is emptied first. Entries keep their catalogue ids
// so reruns overwrite rather than duplicate.
func (s *Seeder) Run(ctx context.Context, c *Catalogue, reset bool) (Summary, error) {
	now := s.nowFunc().UTC()
	g, ctx := errgroup.WithContext(ctx)

	var sum Summary
	cleared := make([]int, 3)

	g.Go(func() error {
		if reset {
			n, err := s.Products.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear products: %w", err)
			}
			cleared[0] = n
		}
		for _, p := range c.Products {
			if err := s.Products.Upsert(ctx, p.document(now)); err != nil {
				return fmt.Errorf("seed product %s: %w", p.ID, err)
			}
		}
		sum.Products = len(c.Products)
		return nil
	})
	g.Go(func() error {
		if reset {
			n, err := s.Services.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear services: %w", err)
			}
			cleared[1] = n
		}
		for _, svc := range c.Services {
			if err := s.Services.Upsert(ctx, svc.document(now)); err != nil {
				return fmt.Errorf("seed service %s: %w", svc.ID, err)
			}
		}
		sum.Services = len(c.Services)
		return nil
	})
	g.Go(func() error {
		if reset {
			n, err := s.Blog.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear blog posts: %w", err)
			}
			cleared[2] = n
		}
		for _, p := range c.Posts {
			if err := s.Blog.Upsert(ctx, p.document(now)); err != nil {
				return fmt.Errorf("seed blog post %s: %w", p.ID, err)
			}
		}
		sum.Posts = len(c.Posts)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	sum.Cleared = cleared[0] + cleared[1] + cleared[2]
	s.Logger.Info("catalogue seeded",
		zap.Int("products", sum.Products),
		zap.Int("services", sum.Services),
		zap.Int("blog_posts", sum.Posts),
		zap.Int("cleared", sum.Cleared),
	)
	return sum, nil
}
