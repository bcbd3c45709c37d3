package handlers

import (
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	svc    services.CatalogService
	logger *zap.SugaredLogger
}

func NewCatalogHandler(svc services.CatalogService, logger *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// Categories

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.svc.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Categories fetched successfully", out)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	cat, err := h.svc.CreateCategory(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Category created successfully", cat)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var req models.CategoryUpdateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	cat, err := h.svc.UpdateCategory(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Category updated successfully", cat)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	var req models.CategoryDeleteRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	if err := h.svc.DeleteCategory(c.UserContext(), req.CID); err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Category deleted successfully", nil)
}

// Subcategories

func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	out, err := h.svc.ListSubcategories(c.UserContext(), c.Query("categoryId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Subcategories fetched successfully", out)
}

func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	var req models.SubcategoryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	sc, err := h.svc.CreateSubcategory(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Subcategory created successfully", sc)
}

func (h *CatalogHandler) UpdateSubcategory(c *fiber.Ctx) error {
	var req models.SubcategoryUpdateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	sc, err := h.svc.UpdateSubcategory(c.UserContext(), c.Params("scid"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Subcategory updated successfully", sc)
}

func (h *CatalogHandler) DeleteSubcategory(c *fiber.Ctx) error {
	if err := h.svc.DeleteSubcategory(c.UserContext(), c.Params("scid")); err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Subcategory deleted successfully", nil)
}

func (h *CatalogHandler) ListBanners(c *fiber.Ctx) error {
	out, err := h.svc.ListBanners(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Banners retrieved successfully", out)
}
