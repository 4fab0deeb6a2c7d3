package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/service"
)

type CartHandler struct {
	cart   *service.CartService
	logger *zap.Logger
}

func NewCartHandler(cart *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cart.Get(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Set(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req domain.SetCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	cart, err := h.cart.Set(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}
		h.logger.Error("Failed to set cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to set cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.cart.Clear(c.Request.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
