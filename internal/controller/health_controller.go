package controller

import (
	"context"
	"net/http"
	"slp_caseload_backend/internal/util"
	"slp_caseload_backend/pkg/notify"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *notify.Publisher
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, publisher *notify.Publisher) *HealthController {
	return &HealthController{DB: db, Redis: rdb, Publisher: publisher}
}

// @Summary Health check
// @Description Reports service and dependency status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}
	if c.Redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			components["redis"] = "down"
		} else {
			components["redis"] = "up"
		}
	}
	if c.Publisher != nil {
		if c.Publisher.IsConnected() {
			components["messaging"] = "up"
		} else {
			components["messaging"] = "down"
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
