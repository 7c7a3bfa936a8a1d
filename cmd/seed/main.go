// Command seed loads the starter catalogue into DynamoDB.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/blog"
	"github.com/imrishuroy/go-storefront-admin/internal/config"
	"github.com/imrishuroy/go-storefront-admin/internal/logging"
	"github.com/imrishuroy/go-storefront-admin/internal/products"
	"github.com/imrishuroy/go-storefront-admin/internal/seed"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
	"github.com/imrishuroy/go-storefront-admin/internal/slots"
)

// tableSpecs lists every table the storefront uses.
func tableSpecs(t config.Tables) []aws.TableSpec {
	return []aws.TableSpec{
		{Name: t.Products, Key: "id"},
		{Name: t.Services, Key: "id"},
		{Name: t.Orders, Key: "id"},
		{Name: t.Bookings, Key: "id"},
		{Name: t.BookingSlots, Key: slots.KeyAttr},
		{Name: t.Blog, Key: "id"},
		{Name: t.Contact, Key: "id"},
	}
}

func main() {
	createTables := flag.Bool("create-tables", false, "create missing tables (local DynamoDB)")
	reset := flag.Bool("reset", false, "delete existing products, services and blog posts first")
	file := flag.String("file", "", "catalogue YAML (defaults to the embedded one)")
	flag.Parse()

	_ = godotenv.Load()
	logger, err := logging.New(logging.Options{Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}
	tables := config.TablesFromEnv()

	if *createTables {
		g, gctx := errgroup.WithContext(ctx)
		for _, spec := range tableSpecs(tables) {
			spec := spec
			g.Go(func() error {
				created, err := aws.EnsureTable(gctx, clients.TableAdmin, spec)
				if err != nil {
					return err
				}
				if created {
					logger.Info("created table", zap.String("table", spec.Name), zap.String("key", spec.Key))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.Fatal("failed to create tables", zap.Error(err))
		}
	}

	catalogue, err := loadCatalogue(*file)
	if err != nil {
		logger.Fatal("failed to load catalogue", zap.Error(err))
	}

	seeder := seed.NewSeeder(
		products.NewStore(clients.DynamoDB, tables.Products),
		services.NewStore(clients.DynamoDB, tables.Services),
		blog.NewStore(clients.DynamoDB, tables.Blog),
		logger,
	)
	if _, err := seeder.Run(ctx, catalogue, *reset); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

func loadCatalogue(path string) (*seed.Catalogue, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Read(f)
}
