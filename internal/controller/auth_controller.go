package controller

import (
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type SSOExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SSOExchange trades a Hub authorization code for the Hub token pair.
func (c *AuthController) SSOExchange(ctx *gin.Context) {
	var req SSOExchangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pair, err := c.AuthService.ExchangeCode(ctx.Request.Context(), req.Code)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, pair)
}

// Me returns the local profile behind the presented token.
func (c *AuthController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
