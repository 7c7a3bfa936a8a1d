package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-admin/internal/auth"
	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/config"
	"github.com/imrishuroy/go-storefront-admin/internal/handlers"
	"github.com/imrishuroy/go-storefront-admin/internal/logging"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
)

func newCredentials(cfg *config.Config) (*auth.CredentialStore, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		var err error
		if hash, err = auth.HashPassword(cfg.AdminPassword); err != nil {
			return nil, err
		}
	}
	return auth.NewCredentialStore(cfg.AdminEmail, cfg.AdminName, hash)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(logging.Options{
		Production: cfg.Production(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	creds, err := newCredentials(cfg)
	if err != nil {
		logger.Fatal("invalid admin credentials", zap.Error(err))
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.TokenTTL,
		Issuer: cfg.JWTIssuer,
	}, creds)
	if err != nil {
		logger.Fatal("failed to init token service", zap.Error(err))
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.EventsQueueURL != "" {
		notifier = aws.NewPublisher(clients.SQS, cfg.EventsQueueURL)
	} else {
		logger.Info("EVENTS_QUEUE_URL not set, storefront events disabled")
	}

	productsTable := cfg.Tables.Products
	r := handlers.NewRouter(handlers.RouterConfig{
		Prefix:      cfg.APIPrefix,
		CORSOrigins: cfg.CORSOrigins,
		Handlers: handlers.HandlerConfig{
			DynamoDBClient: clients.DynamoDB,
			Tables:         cfg.Tables,
			Credentials:    creds,
			Tokens:         tokens,
			Notifier:       notifier,
			Logger:         logger,
			HealthCheck: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
				defer cancel()
				_, err := clients.TableAdmin.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &productsTable})
				return err
			},
		},
	})

	// if RUN_LOCAL is true, run a local HTTP server for development.
	if cfg.RunLocal {
		logger.Info("running local server", zap.String("addr", cfg.HTTPAddr), zap.String("prefix", cfg.APIPrefix))
		if err := r.Run(cfg.HTTPAddr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
