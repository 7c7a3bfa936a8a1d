package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig configures the gin engine around the API routes.
type RouterConfig struct {
	Prefix      string
	CORSOrigins []string
	Handlers    HandlerConfig
}

// NewRouter builds the engine: recovery, request logging, CORS, then the
// API routes under Prefix.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Handlers.Logger
	if logger == nil {
		logger = zap.L()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(CORS(cfg.CORSOrigins))

	RegisterRoutes(r.Group(cfg.Prefix), cfg.Handlers)
	return r
}
