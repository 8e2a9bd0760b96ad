package handlers

import (
	"net/http"

	"finflow/internal/dto"
	"finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns the owner's categories, seeding defaults on first access
func (h *CategoryHandler) List(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.List(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{
		Categories: toCategoryResponses(categories),
	})
}

// Create adds a new category for the owner
func (h *CategoryHandler) Create(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(ownerID, req.Name)
	if err != nil {
		switch err {
		case services.ErrCategoryNameBlank:
			return SendError(c, errors.CategoryNameBlank)
		case services.ErrCategoryDuplicate:
			return SendError(c, errors.CategoryDuplicate)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// Delete removes a category that no entries reference
func (h *CategoryHandler) Delete(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	if err := h.categoryService.Delete(ownerID, categoryID); err != nil {
		switch err {
		case services.ErrCategoryNotFound:
			return SendError(c, errors.CategoryNotFound)
		case services.ErrCategoryInUse:
			return SendError(c, errors.CategoryInUse)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Category deleted successfully",
	})
}

func toCategoryResponse(category models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}

func toCategoryResponses(categories []models.Category) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}
	return responses
}
