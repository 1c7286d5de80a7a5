package pictor

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/artfolio/pictor/api"
)

type ImageMeta struct {
	ArtworkId  string `json:"artwork_id"`
	HasImage   bool   `json:"has_image"`
	DisplayUrl string `json:"display_url,omitempty"`
	ZoomUrl    string `json:"zoom_url,omitempty"`
}

// API: GET /artwork-image/meta?id=<artwork>
//
// Tells the front end whether an artwork has an image and which delivery URLs
// to embed. No origin fetch happens here.
func (p *Pictor) getImageMeta(gc *gin.Context) {
	apiResponseType := "pictor-image-meta"

	if p.db == nil {
		api.JSONError(gc, apiResponseType, http.StatusServiceUnavailable, "not configured")
		return
	}

	artworkId := gc.Query("id")
	if artworkId == "" {
		api.JSONError(gc, apiResponseType, http.StatusBadRequest, "id is required")
		return
	}

	ctx := gc.Request.Context()

	var originURL *string
	query := fmt.Sprintf(`SELECT origin_url FROM %s.artwork WHERE id = $1`, p.dbSchema)
	err := p.db.QueryRow(ctx, query, artworkId).Scan(&originURL)
	if errors.Is(err, pgx.ErrNoRows) {
		api.JSONError(gc, apiResponseType, http.StatusNotFound, "artwork not found")
		return
	}
	if err != nil {
		p.logger.Error("image meta lookup failed", "artwork_id", artworkId, "err", err)
		api.JSONDatabaseError(gc, apiResponseType)
		return
	}

	meta := ImageMeta{ArtworkId: artworkId}
	if originURL != nil && *originURL != "" {
		meta.HasImage = true
		meta.DisplayUrl = "/api/artwork-image?id=" + artworkId
		meta.ZoomUrl = "/api/artwork-image/zoom?id=" + artworkId
	}

	api.JSONSuccess(gc, apiResponseType, meta, nil)
}
