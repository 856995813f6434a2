package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/middleware"
)

// categoryHandler handles HTTP requests related to categories and their
// price types.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	pricingService  portssvc.PricingSvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade, ps portssvc.PricingSvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs, pricingService: ps}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, pricingService portssvc.PricingSvcFacade) {
	h := newCategoryHandler(categoryService, pricingService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
		categories.PUT("/:id/prices", h.setCategoryPrices)
	}
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves all categories with their price types and current prices.
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), actorID)
	if err != nil {
		respondWithError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a category together with its price types in one transaction. Blank price type rows are ignored.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.SaveCategoryRequest true "Category with price type rows"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Category name exists"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(*category))
}

// updateCategory godoc
// @Summary Update a category
// @Description Edits a category and its price types in one transaction. Rows flagged delete are removed, new rows are added, existing rows are updated; all together or not at all.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.SaveCategoryRequest true "Category with price type rows"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Category not found"
// @Failure 409 {object} ErrorResponse "Category name exists"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	var req dto.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(*category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Removes a category; its price types, prices and history are removed with it.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondWithError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}

// setCategoryPrices godoc
// @Summary Set prices for a category
// @Description Applies the bulk price form for one category. Every entry is validated first; the writes commit in a single transaction.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param prices body dto.SetCategoryPricesRequest true "Raw price strings keyed by price type ID"
// @Success 200 {array} dto.PriceHistoryResponse "History entries for the values that changed"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Price type not found"
// @Security BearerAuth
// @Router /categories/{id}/prices [put]
func (h *categoryHandler) setCategoryPrices(c *gin.Context) {
	var req dto.SetCategoryPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	history, err := h.pricingService.SetCategoryPrices(c.Request.Context(), c.Param("id"), req.Prices, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to set category prices")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPriceHistoryResponse(history))
}
