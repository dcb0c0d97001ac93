package api

import (
	"context"
	"image"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/spellhub/internal/cards"
	"github.com/youruser/spellhub/internal/config"
	imagepkg "github.com/youruser/spellhub/internal/image"
)

// DatasetLoader fetches a fresh dataset for revalidation.
type DatasetLoader interface {
	Load(ctx context.Context) (cards.Dataset, error)
}

type Server struct {
	cfg        config.Config
	catalog    *cards.Catalog
	loader     DatasetLoader
	log        *zap.Logger
	fetchImage func(ctx context.Context, url string) (image.Image, error)
}

func NewServer(cfg config.Config, catalog *cards.Catalog, loader DatasetLoader, log *zap.Logger) *Server {
	return &Server{
		cfg:        cfg,
		catalog:    catalog,
		loader:     loader,
		log:        log,
		fetchImage: imagepkg.DownloadImage,
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.log), gin.Recovery())
	RegisterRoutes(r, s)
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
