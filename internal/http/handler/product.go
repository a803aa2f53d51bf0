package handler

import (
	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/service"
)

// ListProducts returns the catalogue, optionally filtered by category and featured.
//
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Param featured query bool false "Featured only"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param skip query int false "Offset"
// @Success 200 {object} service.ListResult[model.Product]
// @Router /api/products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, skip, qerr := page(c)
		if qerr != nil {
			return qerr.write(c)
		}
		featured, qerr := optionalBool(c, "featured")
		if qerr != nil {
			return qerr.write(c)
		}
		res, err := svc.List(c.UserContext(), service.ProductListQuery{
			Category: c.Query("category"),
			Featured: featured,
			Limit:    limit,
			Skip:     skip,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/products/{id} [get]
func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Get a product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} model.Product
// @Failure 404 {object} errorPayload
// @Router /api/products/slug/{slug} [get]
func GetProductBySlug(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security AdminSession
// @Param request body service.ProductInput true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errorPayload
// @Router /api/products [post]
func CreateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProductInput
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security AdminSession
// @Param id path string true "Product ID"
// @Param request body service.ProductPatch true "Fields to change"
// @Success 200 {object} model.Product
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/products/{id} [put]
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		var patch service.ProductPatch
		if err := strictDecode(c, &patch); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Delete a product
// @Tags products
// @Security AdminSession
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/products/{id} [delete]
func DeleteProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
