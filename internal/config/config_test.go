package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("JWT_SECRET", "signing-key")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "Amministratore", cfg.AdminName)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RunLocal)
	assert.False(t, cfg.Production())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, Tables{
		Products:     "products",
		Services:     "services",
		Orders:       "orders",
		Bookings:     "bookings",
		BookingSlots: "booking_slots",
		Blog:         "blog_posts",
		Contact:      "contact_messages",
	}, cfg.Tables)
	assert.Equal(t, "Storefront", cfg.MetricsNamespace)
	assert.Empty(t, cfg.EventsQueueURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("RUN_LOCAL", "true")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, http://localhost:3000 ,")
	t.Setenv("ORDERS_TABLE", "prod-orders")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.True(t, cfg.RunLocal)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "prod-orders", cfg.Tables.Orders)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing email", map[string]string{"ADMIN_EMAIL": ""}, "ADMIN_EMAIL"},
		{"missing password", map[string]string{"ADMIN_PASSWORD": ""}, "ADMIN_PASSWORD"},
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad ttl", map[string]string{"TOKEN_TTL_MINUTES": "soon"}, "TOKEN_TTL_MINUTES"},
		{"negative ttl", map[string]string{"TOKEN_TTL_MINUTES": "-5"}, "TOKEN_TTL_MINUTES"},
		{"bad run local", map[string]string{"RUN_LOCAL": "maybe"}, "RUN_LOCAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnv_HashOnly(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.AdminPassword)
	assert.NotEmpty(t, cfg.AdminPasswordHash)
}

func TestLoadWorker_NeedsNoCredentials(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("METRICS_NAMESPACE", "Shop/Events")

	cfg, err := LoadWorker()
	require.NoError(t, err)
	assert.Equal(t, "Shop/Events", cfg.MetricsNamespace)
	assert.Equal(t, "info", cfg.LogLevel)
}
