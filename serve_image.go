package pictor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VariantKind string

const (
	DisplayVariant VariantKind = "display"
	ZoomVariant    VariantKind = "zoom"
)

const (
	// displayMaxLongEdge keeps display images within the size search-engine
	// crawlers still index.
	displayMaxLongEdge = 1000
	zoomMaxLongEdge    = 3000

	// Request clamp for the display w parameter. The 2400 ceiling sits above
	// the hard display cap as headroom, should the cap ever be relaxed.
	minRequestEdge = 200
	maxRequestEdge = 2400

	displayCacheControl = "public, max-age=86400, s-maxage=86400"
	zoomCacheControl    = "private, max-age=3600"

	// Reuse windows for the origin fetch itself. Originals are immutable, so
	// the zoom variant asks for a full day to avoid re-pulling large files.
	displayOriginReuseSec = 3600
	zoomOriginReuseSec    = 86400
)

// API: GET /artwork-image?id=<artwork>&w=<long edge>
func (p *Pictor) getDisplayImage(gc *gin.Context) {
	p.serveArtworkImage(gc, DisplayVariant)
}

// API: GET /artwork-image/zoom?id=<artwork>
func (p *Pictor) getZoomImage(gc *gin.Context) {
	p.serveArtworkImage(gc, ZoomVariant)
}

// displayLongEdge computes the effective display bound:
// min(displayMaxLongEdge, clamp(w, minRequestEdge, maxRequestEdge)), with a
// missing or non-numeric w defaulting to displayMaxLongEdge.
func displayLongEdge(gc *gin.Context) int {
	edge := QueryIntClamped(gc, "w", displayMaxLongEdge, minRequestEdge, maxRequestEdge)
	if edge > displayMaxLongEdge {
		edge = displayMaxLongEdge
	}
	return edge
}

func (p *Pictor) serveArtworkImage(gc *gin.Context, kind VariantKind) {
	if p.db == nil {
		gc.JSON(http.StatusServiceUnavailable, gin.H{"error": "Not configured"})
		return
	}

	artworkId := gc.Query("id")
	if artworkId == "" {
		gc.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	maxEdge := zoomMaxLongEdge
	originReuse := zoomOriginReuseSec
	cacheControl := zoomCacheControl
	if kind == DisplayVariant {
		maxEdge = displayLongEdge(gc)
		originReuse = displayOriginReuseSec
		cacheControl = displayCacheControl
	}

	ctx := gc.Request.Context()

	originURL, err := p.resolveOrigin(ctx, artworkId)
	if err != nil {
		p.failPipeline(gc, artworkId, kind, err)
		return
	}

	data, err := p.fetchOrigin(ctx, originURL, originReuse)
	if err != nil {
		p.failPipeline(gc, artworkId, kind, err)
		return
	}

	img, err := transformImage(data, maxEdge)
	if err != nil {
		p.failPipeline(gc, artworkId, kind, err)
		return
	}

	gc.Header("Cache-Control", cacheControl)
	gc.Data(http.StatusOK, img.ContentType, img.Bytes)
}

// failPipeline maps a pipeline error to the response taxonomy. Not-found is
// the caller's problem and is not logged as a fault; everything else is an
// upstream failure worth diagnosing.
func (p *Pictor) failPipeline(gc *gin.Context, artworkId string, kind VariantKind, err error) {
	if errors.Is(err, ErrNotFound) {
		gc.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	p.logger.Error("artwork image pipeline failed",
		"artwork_id", artworkId,
		"variant", string(kind),
		"stage", stageOf(err),
		"err", err)
	gc.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch image"})
}
