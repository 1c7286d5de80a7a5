package pictor

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/artfolio/pictor/api"
)

type OriginRefRequest struct {
	OriginUrl string `json:"origin_url" binding:"required"`
}

type OriginRefResult struct {
	ArtworkId string `json:"artwork_id"`
	Message   string `json:"message"`
}

// API: PUT /artworks/:id/image (admin)
//
// Sets or replaces the stored origin reference for an artwork. The object
// itself is uploaded elsewhere; this endpoint only records where it lives.
func (p *Pictor) putArtworkImage(gc *gin.Context) {
	apiResponseType := "pictor-artwork-image"

	if p.db == nil {
		api.JSONError(gc, apiResponseType, http.StatusServiceUnavailable, "not configured")
		return
	}

	artworkId := gc.Param("id")
	if artworkId == "" {
		api.JSONError(gc, apiResponseType, http.StatusBadRequest, "id is required")
		return
	}

	var req OriginRefRequest
	if err := gc.ShouldBindJSON(&req); err != nil {
		api.JSONError(gc, apiResponseType, http.StatusBadRequest, "origin_url is required")
		return
	}
	if !validOriginURL(req.OriginUrl) {
		api.JSONError(gc, apiResponseType, http.StatusBadRequest, "origin_url must be an absolute http(s) URL")
		return
	}

	ctx := gc.Request.Context()

	txErr := WithTransaction(ctx, p.db, func(tx pgx.Tx) *TxError {
		query := fmt.Sprintf(`UPDATE %s.artwork SET origin_url = $2 WHERE id = $1`, p.dbSchema)
		tag, err := tx.Exec(ctx, query, artworkId, req.OriginUrl)
		if err != nil {
			return &TxError{Code: http.StatusInternalServerError, Err: fmt.Errorf("update origin_url: %w", err)}
		}
		if tag.RowsAffected() == 0 {
			return &TxError{Code: http.StatusNotFound, Err: errors.New("artwork not found")}
		}
		return nil
	})
	if txErr != nil {
		p.respondTxError(gc, apiResponseType, artworkId, txErr)
		return
	}

	api.JSONSuccess(gc, apiResponseType, OriginRefResult{
		ArtworkId: artworkId,
		Message:   "origin image reference updated",
	}, nil)
}

// API: DELETE /artworks/:id/image (admin)
//
// Clears the origin reference; the artwork becomes imageless and the public
// image endpoints answer 404 for it.
func (p *Pictor) deleteArtworkImage(gc *gin.Context) {
	apiResponseType := "pictor-artwork-image"

	if p.db == nil {
		api.JSONError(gc, apiResponseType, http.StatusServiceUnavailable, "not configured")
		return
	}

	artworkId := gc.Param("id")
	if artworkId == "" {
		api.JSONError(gc, apiResponseType, http.StatusBadRequest, "id is required")
		return
	}

	ctx := gc.Request.Context()

	txErr := WithTransaction(ctx, p.db, func(tx pgx.Tx) *TxError {
		query := fmt.Sprintf(`UPDATE %s.artwork SET origin_url = NULL WHERE id = $1`, p.dbSchema)
		tag, err := tx.Exec(ctx, query, artworkId)
		if err != nil {
			return &TxError{Code: http.StatusInternalServerError, Err: fmt.Errorf("clear origin_url: %w", err)}
		}
		if tag.RowsAffected() == 0 {
			return &TxError{Code: http.StatusNotFound, Err: errors.New("artwork not found")}
		}
		return nil
	})
	if txErr != nil {
		p.respondTxError(gc, apiResponseType, artworkId, txErr)
		return
	}

	api.JSONSuccess(gc, apiResponseType, OriginRefResult{
		ArtworkId: artworkId,
		Message:   "origin image reference removed",
	}, nil)
}

func (p *Pictor) respondTxError(gc *gin.Context, apiResponseType, artworkId string, txErr *TxError) {
	if txErr.Code == http.StatusNotFound {
		api.JSONError(gc, apiResponseType, http.StatusNotFound, "artwork not found")
		return
	}
	p.logger.Error("artwork image write failed", "artwork_id", artworkId, "err", txErr.Err)
	api.JSONError(gc, apiResponseType, txErr.Code, "database error")
}

func validOriginURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
