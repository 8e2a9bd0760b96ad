package handlers

import (
	"net/http"
	"time"

	"finflow/internal/dto"
	"finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EntryHandler handles income/expense entry endpoints
type EntryHandler struct {
	entryService services.EntryServiceInterface
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService services.EntryServiceInterface) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Create records a new income or expense entry
func (h *EntryHandler) Create(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.Create(ownerID, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// List returns the owner's entries with optional filters
func (h *EntryHandler) List(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseEntryFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate)
	}

	entries, total, err := h.entryService.List(ownerID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toEntryResponse(&entries[i]))
	}

	return c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries: responses,
		Total:   total,
	})
}

// Get returns one entry by id
func (h *EntryHandler) Get(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	entry, err := h.entryService.GetByID(ownerID, entryID)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Update patches an existing entry
func (h *EntryHandler) Update(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	var req dto.UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.Update(ownerID, entryID, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete removes an entry
func (h *EntryHandler) Delete(c echo.Context) error {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid entry ID"))
	}

	if err := h.entryService.Delete(ownerID, entryID); err != nil {
		return h.mapEntryError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Entry deleted successfully",
	})
}

func (h *EntryHandler) mapEntryError(c echo.Context, err error) error {
	switch err {
	case services.ErrEntryNotFound:
		return SendError(c, errors.EntryNotFound)
	case services.ErrUnknownCategory:
		return SendError(c, errors.CategoryNotFound)
	case services.ErrInvalidAmount, services.ErrNegativeAmount:
		return SendError(c, errors.EntryInvalidAmount)
	case services.ErrInvalidDate:
		return SendError(c, errors.EntryInvalidDate)
	default:
		return SendSystemError(c, err)
	}
}

func parseEntryFilters(c echo.Context) (models.EntryFilters, error) {
	filters := models.EntryFilters{
		Limit:  getIntParam(c, "limit", 50),
		Offset: getIntParam(c, "offset", 0),
	}

	if entryType := c.QueryParam("type"); entryType != "" {
		filters.Type = entryType
	}

	if categoryParam := c.QueryParam("categoryId"); categoryParam != "" {
		if categoryID, err := uuid.Parse(categoryParam); err == nil {
			filters.CategoryID = categoryID
		}
	}

	if startParam := c.QueryParam("startDate"); startParam != "" {
		start, err := time.Parse(models.DateLayout, startParam)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}

	if endParam := c.QueryParam("endDate"); endParam != "" {
		end, err := time.Parse(models.DateLayout, endParam)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}

	return filters, nil
}

func toEntryResponse(entry *models.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:           entry.ID.String(),
		Type:         entry.Type,
		Amount:       entry.Amount.StringFixed(2),
		CategoryID:   entry.CategoryID.String(),
		CategoryName: entry.Category.Name,
		Description:  entry.Description,
		Date:         entry.Date.Format(models.DateLayout),
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}
