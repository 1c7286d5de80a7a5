package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ApiResponse[T any] struct {
	Service      string                 `json:"service"`
	Version      string                 `json:"version"`
	ResponseType string                 `json:"type"`
	Status       string                 `json:"status"`
	Timestamp    string                 `json:"timestamp"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
	Data         T                      `json:"data,omitempty"`
	Message      string                 `json:"error,omitempty"`
}

func JSONSuccess[T any](gc *gin.Context, responseType string, data T, meta map[string]interface{}) {
	resp := ApiResponse[T]{
		Service:      "Pictor API",
		Version:      "1.0",
		ResponseType: responseType,
		Status:       "ok",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Meta:         meta,
		Data:         data,
	}
	gc.JSON(200, resp)
}

func JSONError(gc *gin.Context, responseType string, statusCode int, errorMessage string) {
	resp := ApiResponse[any]{
		Service:      "Pictor API",
		Version:      "1.0",
		ResponseType: responseType,
		Status:       "error",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Message:      errorMessage,
	}
	gc.JSON(statusCode, resp)
}

func JSONDatabaseError(gc *gin.Context, responseType string) {
	JSONError(gc, responseType, http.StatusInternalServerError, "database error")
}
