package pictor

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artfolio/pictor/api"
	"github.com/artfolio/pictor/app"
)

// Pictor serves resized artwork images for the portfolio site. All
// dependencies are injected at construction; there is no package-level
// instance.
type Pictor struct {
	db        Querier // nil when the deployment is unconfigured
	origin    *http.Client
	logger    *slog.Logger
	dbSchema  string
	jwtSecret []byte
}

func New(db Querier, originClient *http.Client, logger *slog.Logger, config app.Config) *Pictor {
	if originClient == nil {
		originClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	schema := config.DbSchema
	if schema == "" {
		schema = "public"
	}
	return &Pictor{
		db:        db,
		origin:    originClient,
		logger:    logger,
		dbSchema:  schema,
		jwtSecret: []byte(config.AdminJwtSecret),
	}
}

func (p *Pictor) RegisterRoutes(rg *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	group := rg.Group("", middlewares...)

	group.GET("/artwork-image", p.getDisplayImage)
	group.GET("/artwork-image/zoom", p.getZoomImage)
	group.GET("/artwork-image/meta", p.getImageMeta)

	admin := group.Group("/artworks", p.AdminAuth())
	admin.PUT("/:id/image", p.putArtworkImage)
	admin.DELETE("/:id/image", p.deleteArtworkImage)
}

// GetHealth reports whether the service runs with its database dependency or
// degraded (image endpoints answering 503).
func (p *Pictor) GetHealth(gc *gin.Context) {
	status := "ok"
	if p.db == nil {
		status = "unconfigured"
	}
	api.JSONSuccess(gc, "pictor-health", gin.H{"database": status}, nil)
}
