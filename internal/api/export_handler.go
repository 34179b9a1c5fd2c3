package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"resuminator/internal/api/middleware"
	"resuminator/internal/database"
	"resuminator/internal/section"
)

// ExportHandler assembles the full résumé payload across every section.
type ExportHandler struct {
	stores []*section.Store
}

// NewExportHandler constructs the handler with one store per section kind.
func NewExportHandler(db *gorm.DB) *ExportHandler {
	stores := make([]*section.Store, 0, len(section.Kinds))
	for _, kind := range section.Kinds {
		stores = append(stores, section.NewStore(db, kind))
	}
	return &ExportHandler{stores: stores}
}

// Export reads all eight sections concurrently and merges them into a
// single payload keyed by section name. One failed lookup fails the whole
// export; a section with no rows exports as an empty list.
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	results := make([][]database.SectionRow, len(h.stores))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, store := range h.stores {
		g.Go(func() error {
			rows, err := store.All(ctx, userID)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		middleware.LoggerFromContext(c).Error("resume export failed", slog.Any("error", err))
		Internal(c, "failed to fetch resume data")
		return
	}

	payload := gin.H{}
	for i, store := range h.stores {
		items := make([]gin.H, 0, len(results[i]))
		for j := range results[i] {
			items = append(items, sectionBody(&results[i][j]))
		}
		payload[store.Kind().ExportName()] = items
	}

	c.JSON(http.StatusOK, payload)
}
