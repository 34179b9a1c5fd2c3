package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resuminator/internal/api/middleware"
	"resuminator/internal/database"
	"resuminator/internal/section"
)

// SectionHandler serves the CRUD surface for one résumé section kind. One
// implementation covers all eight kinds; the bound section.Kind is the only
// difference between them.
type SectionHandler struct {
	store *section.Store
}

// NewSectionHandler constructs the handler for a section kind.
func NewSectionHandler(db *gorm.DB, kind section.Kind) *SectionHandler {
	return &SectionHandler{store: section.NewStore(db, kind)}
}

// bindDocument reads the request body as the section document. Identity
// fields are owned by the server and stripped from whatever the client sent.
func (h *SectionHandler) bindDocument(c *gin.Context) (datatypes.JSON, bool) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}

	delete(doc, "id")
	delete(doc, "user_id")

	encoded, err := json.Marshal(doc)
	if err != nil {
		Internal(c, "failed to encode payload")
		return nil, false
	}
	return encoded, true
}

// sectionBody merges the stored document with the row's identity fields.
func sectionBody(row *database.SectionRow) gin.H {
	body := gin.H{}
	if len(row.Data) > 0 {
		_ = json.Unmarshal(row.Data, &body)
	}
	body["id"] = row.ID
	body["user_id"] = row.UserID
	body["created_at"] = row.CreatedAt
	body["updated_at"] = row.UpdatedAt
	return body
}

// Create inserts a new row for the caller. Repeated posts accumulate rows;
// reads always answer with the oldest one.
func (h *SectionHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	data, ok := h.bindDocument(c)
	if !ok {
		return
	}

	row, err := h.store.Create(c.Request.Context(), userID, data)
	if err != nil {
		h.logError(c, "create failed", err)
		Internal(c, "failed to save "+h.store.Kind().Name+" details")
		return
	}

	c.JSON(http.StatusOK, sectionBody(row))
}

// Get returns the caller's section document, or null when none exists.
func (h *SectionHandler) Get(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	row, err := h.store.First(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, section.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.logError(c, "fetch failed", err)
		Internal(c, "failed to fetch "+h.store.Kind().Name+" details")
		return
	}

	c.JSON(http.StatusOK, sectionBody(row))
}

// Update replaces the caller's section document, creating it when absent.
func (h *SectionHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	data, ok := h.bindDocument(c)
	if !ok {
		return
	}

	row, err := h.store.Update(c.Request.Context(), userID, data)
	if err != nil {
		h.logError(c, "update failed", err)
		Internal(c, "failed to update "+h.store.Kind().Name+" details")
		return
	}

	c.JSON(http.StatusOK, sectionBody(row))
}

// Delete removes the caller's section rows.
func (h *SectionHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	if err := h.store.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, section.ErrNotFound) {
			NotFound(c, "details not found")
			return
		}
		h.logError(c, "delete failed", err)
		Internal(c, "failed to delete "+h.store.Kind().Name+" details")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.store.Kind().Name + " details deleted successfully"})
}

// DeleteEntry removes one embedded entry by id from a list-valued section.
func (h *SectionHandler) DeleteEntry(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	entryID := c.Param("id")
	_, err := h.store.DeleteEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, section.ErrNotFound) || errors.Is(err, section.ErrEntryNotFound) {
			NotFound(c, "details not found")
			return
		}
		h.logError(c, "delete entry failed", err)
		Internal(c, "failed to delete "+h.store.Kind().Name+" details")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.store.Kind().Name + " entry deleted successfully"})
}

func (h *SectionHandler) logError(c *gin.Context, msg string, err error) {
	middleware.LoggerFromContext(c).Error(msg,
		slog.String("section", h.store.Kind().Name),
		slog.Any("error", err),
	)
}
