package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"klontong/internal/middleware"
	"klontong/internal/models"
	"klontong/internal/services"
	"klontong/pkg/httpclient"
)

// ProductHandler serves the product screens and their actions.
type ProductHandler struct {
	productService *services.ProductService
	authService    *services.AuthService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, authService *services.AuthService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		authService:    authService,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The
// whole group requires authentication; create and edit additionally
// require the admin session.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	admin := middleware.RequireAdmin(h.authService)

	products := router.Group("/products", middleware.RequireAuth(h.authService))
	products.Get("/", h.ListScreen)
	products.Get("/create", admin, h.CreateScreen)
	products.Post("/create", admin, h.HandleCreate)
	products.Get("/:id", h.DetailScreen)
	products.Get("/:id/edit", admin, h.EditScreen)
	products.Post("/:id/edit", admin, h.HandleUpdate)
	products.Delete("/:id", admin, h.HandleDelete)
}

// ListScreen returns the product list view model.
func (h *ProductHandler) ListScreen(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"screen":   "products",
		"products": products,
	})
}

// DetailScreen returns the product detail view model.
func (h *ProductHandler) DetailScreen(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.Context(), c.Params("id"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(fiber.Map{
		"screen":  "product",
		"product": product,
	})
}

// CreateScreen returns the product creation screen view model.
func (h *ProductHandler) CreateScreen(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"screen": "product-create"})
}

// EditScreen returns the product edit screen view model, prefilled with
// the current record.
func (h *ProductHandler) EditScreen(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.Context(), c.Params("id"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(fiber.Map{
		"screen":  "product-edit",
		"product": product,
	})
}

// HandleCreate validates the input and creates a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if messages := models.ValidateCreateProduct(&input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  messages,
		})
	}

	created, err := h.productService.CreateProduct(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": created})
}

// HandleUpdate validates the input and updates an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if messages := models.ValidateCreateProduct(&input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  messages,
		})
	}

	updated, err := h.productService.UpdateProduct(c.Context(), c.Params("id"), &input)
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(fiber.Map{"product": updated})
}

// HandleDelete deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return productError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// productError maps backend failures to a response, surfacing missing
// records as 404.
func productError(c *fiber.Ctx, err error) error {
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not fetch product",
		"error":   err.Error(),
	})
}
