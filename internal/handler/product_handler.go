package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"demoapi/internal/errors"
	"demoapi/internal/model"
	"demoapi/internal/service"
	"demoapi/internal/store"
)

// ProductHandler bundles product catalog endpoints.
type ProductHandler struct {
	svc *service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Param category query string false "Category filter"
// @Param in_stock query bool false "Stock filter"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	skip, limit := pageParams(c, 100)

	var filter store.ProductFilter
	if v := c.QueryParam("category"); v != "" {
		category := model.Category(v)
		if !category.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter.Category = &category
	}
	if v := c.QueryParam("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid in_stock value")
		}
		filter.InStock = &inStock
	}

	return c.JSON(http.StatusOK, h.svc.List(c.Request().Context(), skip, limit, filter))
}

// SearchProducts godoc
// @Summary Search products by name or description
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	return c.JSON(http.StatusOK, h.svc.Search(c.Request().Context(), query))
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	product, ok := h.svc.Get(c.Request().Context(), id)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrProductNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create a product (admin only)
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductCreate true "Product payload"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req model.ProductCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, h.svc.Create(c.Request().Context(), req))
}

// UpdateProduct godoc
// @Summary Update a product (admin only)
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.ProductUpdate true "Fields to update"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req model.ProductUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product (admin only)
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !h.svc.Delete(c.Request().Context(), id) {
		httpErr := errors.MapErrorToHTTP(errors.ErrProductNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "product deleted successfully",
	})
}
