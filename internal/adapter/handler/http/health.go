package http

import (
	"net/http"

	"github.com/dibekkz/dibek/internal/adapter/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	Handler
	db *storage.DB
}

func NewHealthHandler(db *storage.DB, logger *zap.Logger) (*HealthHandler, error) {
	return &HealthHandler{
		Handler: Handler{logger: logger},
		db:      db,
	}, nil
}

func (hh *HealthHandler) Healthz(ctx *gin.Context) {
	err := hh.db.Ping(ctx)
	if err != nil {
		hh.logger.Error("health check", zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
