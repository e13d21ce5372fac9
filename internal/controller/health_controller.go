package controller

import (
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

func (c *HealthController) Health(ctx *gin.Context) {
	status := "ok"
	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	util.Success(ctx, gin.H{"status": status})
}
