package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
)

// priceHandler handles HTTP requests related to price types and prices.
type priceHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newPriceHandler(ps portssvc.PricingSvcFacade) *priceHandler {
	return &priceHandler{pricingService: ps}
}

// registerPriceRoutes registers routes related to prices.
func registerPriceRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newPriceHandler(pricingService)

	priceTypes := rg.Group("/price-types")
	{
		priceTypes.GET("", h.listPriceTypes)
		priceTypes.PUT("/:id/price", h.setPrice)
		priceTypes.GET("/:id/price", h.getCurrentPrice)
		priceTypes.GET("/:id/history", h.listPriceHistory)
	}
}

// listPriceTypes godoc
// @Summary List price types with current prices
// @Description The price overview: every price type joined with its category and current price, or no price when none has been set.
// @Tags prices
// @Produce json
// @Success 200 {array} dto.PriceTypeListingResponse
// @Security BearerAuth
// @Router /price-types [get]
func (h *priceHandler) listPriceTypes(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	listings, err := h.pricingService.ListPriceTypes(c.Request.Context(), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to list price types")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPriceTypeListingResponse(listings))
}

// setPrice godoc
// @Summary Set the price of a price type
// @Description Applies one price. The first write creates the current price, an unchanged value is a no-op, a changed value records a history entry and updates the price in place.
// @Tags prices
// @Accept json
// @Produce json
// @Param id path string true "Price Type ID"
// @Param price body dto.SetPriceRequest true "Raw price value"
// @Success 200 {object} dto.PriceResponse
// @Failure 400 {object} ErrorResponse "Malformed or non-positive price"
// @Failure 404 {object} ErrorResponse "Price type not found"
// @Failure 409 {object} ErrorResponse "Concurrent write collision, retry"
// @Security BearerAuth
// @Router /price-types/{id}/price [put]
func (h *priceHandler) setPrice(c *gin.Context) {
	var req dto.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	price, err := h.pricingService.SetPrice(c.Request.Context(), c.Param("id"), req.Price, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to set price")
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponse(price))
}

// getCurrentPrice godoc
// @Summary Get the current price of a price type
// @Tags prices
// @Produce json
// @Param id path string true "Price Type ID"
// @Success 200 {object} dto.PriceResponse
// @Failure 404 {object} ErrorResponse "No price set yet"
// @Security BearerAuth
// @Router /price-types/{id}/price [get]
func (h *priceHandler) getCurrentPrice(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	price, err := h.pricingService.GetCurrentPrice(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve price")
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceResponse(price))
}

// listPriceHistory godoc
// @Summary List price history of a price type
// @Description Returns the newest history entries first. The limit query parameter caps the result, defaulting to 50.
// @Tags prices
// @Produce json
// @Param id path string true "Price Type ID"
// @Param limit query int false "Maximum entries to return"
// @Success 200 {array} dto.PriceHistoryResponse
// @Failure 404 {object} ErrorResponse "Price type not found"
// @Security BearerAuth
// @Router /price-types/{id}/history [get]
func (h *priceHandler) listPriceHistory(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		return
	}

	history, err := h.pricingService.ListPriceHistory(c.Request.Context(), c.Param("id"), limit, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to list price history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPriceHistoryResponse(history))
}
