package section

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resuminator/internal/database"
)

var (
	// ErrNotFound means no row exists for the user in this section.
	ErrNotFound = errors.New("section: not found")
	// ErrEntryNotFound means the row exists but holds no entry with the given id.
	ErrEntryNotFound = errors.New("section: entry not found")
)

// Store is the CRUD access layer for one section kind. Every kind shares
// this one implementation; the kind only parametrizes the table and the
// entry list key.
type Store struct {
	db   *gorm.DB
	kind Kind
}

// NewStore constructs a store bound to one section kind.
func NewStore(db *gorm.DB, kind Kind) *Store {
	return &Store{db: db, kind: kind}
}

// Kind returns the section kind this store serves.
func (s *Store) Kind() Kind {
	return s.kind
}

func (s *Store) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.kind.Table)
}

// Create inserts a new row for the user. Creation is additive: an existing
// row for the same user is left in place and a second one is added.
func (s *Store) Create(ctx context.Context, userID uint, data datatypes.JSON) (*database.SectionRow, error) {
	data, err := s.withEntryIDs(data)
	if err != nil {
		return nil, err
	}

	row := database.SectionRow{UserID: userID, Data: data}
	if err := s.table(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create %s row: %w", s.kind.Name, err)
	}
	return &row, nil
}

// First returns the user's oldest row, or ErrNotFound.
func (s *Store) First(ctx context.Context, userID uint) (*database.SectionRow, error) {
	var row database.SectionRow
	err := s.table(ctx).Where("user_id = ?", userID).Order("id ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query %s row: %w", s.kind.Name, err)
	}
	return &row, nil
}

// All returns every row the user owns, oldest first.
func (s *Store) All(ctx context.Context, userID uint) ([]database.SectionRow, error) {
	var rows []database.SectionRow
	err := s.table(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s rows: %w", s.kind.Name, err)
	}
	return rows, nil
}

// Update locates the user's row first and then applies the new document to
// it; the owner filter and the change set never share one document. When no
// row exists yet the update falls back to creating one.
func (s *Store) Update(ctx context.Context, userID uint, data datatypes.JSON) (*database.SectionRow, error) {
	data, err := s.withEntryIDs(data)
	if err != nil {
		return nil, err
	}

	row, err := s.First(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return s.Create(ctx, userID, data)
	}
	if err != nil {
		return nil, err
	}

	row.Data = data
	if err := s.table(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("update %s row: %w", s.kind.Name, err)
	}
	return row, nil
}

// Delete removes all of the user's rows for this section.
func (s *Store) Delete(ctx context.Context, userID uint) error {
	res := s.table(ctx).Where("user_id = ?", userID).Delete(&database.SectionRow{})
	if res.Error != nil {
		return fmt.Errorf("delete %s rows: %w", s.kind.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntry removes the embedded entry with the given id from the user's
// row, leaving sibling entries and their order intact.
func (s *Store) DeleteEntry(ctx context.Context, userID uint, entryID string) (*database.SectionRow, error) {
	if !s.kind.HasEntries() {
		return nil, ErrEntryNotFound
	}

	row, err := s.First(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", s.kind.Name, err)
		}
	}

	entries, _ := doc[s.kind.ListKey].([]any)
	kept := make([]any, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if ok {
			if id, _ := entry["id"].(string); id == entryID {
				continue
			}
		}
		kept = append(kept, raw)
	}
	if len(kept) == len(entries) {
		return nil, ErrEntryNotFound
	}

	doc[s.kind.ListKey] = kept
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s row: %w", s.kind.Name, err)
	}

	row.Data = encoded
	if err := s.table(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("update %s row: %w", s.kind.Name, err)
	}
	return row, nil
}

// withEntryIDs assigns an id to every embedded entry that does not carry
// one yet. Scalar kinds pass through untouched.
func (s *Store) withEntryIDs(data datatypes.JSON) (datatypes.JSON, error) {
	if !s.kind.HasEntries() || len(data) == 0 {
		return data, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", s.kind.Name, err)
	}

	entries, ok := doc[s.kind.ListKey].([]any)
	if !ok {
		return data, nil
	}

	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := entry["id"].(string); id == "" {
			entry["id"] = uuid.NewString()
		}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", s.kind.Name, err)
	}
	return encoded, nil
}
