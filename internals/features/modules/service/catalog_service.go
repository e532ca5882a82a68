package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"speaksy_backend/internals/features/modules/model"
)

type CatalogStore interface {
	// FindModules returns active modules in one category, optionally filtered
	// by level (empty string = all levels), ordered by order index then
	// creation time.
	FindModules(ctx context.Context, category, level string) ([]model.LearningModule, error)
}

type LoadState int

const (
	StateLoaded LoadState = iota
	StateEmpty
	StateFailed
)

// CatalogEntry is one lesson as the exercise screens consume it.
type CatalogEntry struct {
	ModuleID    uuid.UUID `json:"module_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	OrderIndex  *int      `json:"order_index"`
	Subtitle    string    `json:"subtitle"`
}

type CatalogResult struct {
	State   LoadState
	Modules []CatalogEntry
	Err     error
}

type CatalogService struct {
	Store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{Store: store}
}

// Load fetches the catalog for one exercise category. The "Lesson N" subtitle
// is 1-based: order_index+1 when the index is set, list position otherwise.
func (s *CatalogService) Load(ctx context.Context, category, level string) CatalogResult {
	rows, err := s.Store.FindModules(ctx, category, level)
	if err != nil {
		return CatalogResult{State: StateFailed, Err: err}
	}
	if len(rows) == 0 {
		return CatalogResult{State: StateEmpty}
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for idx, m := range rows {
		title := m.ModuleTitle
		if title == "" {
			title = "Untitled Module"
		}

		lesson := idx + 1
		if m.ModuleOrderIndex != nil {
			lesson = *m.ModuleOrderIndex + 1
		}

		entries = append(entries, CatalogEntry{
			ModuleID:    m.ModuleID,
			Title:       title,
			Description: m.ModuleDescription,
			Category:    m.ModuleCategory,
			Level:       m.ModuleLevel,
			OrderIndex:  m.ModuleOrderIndex,
			Subtitle:    fmt.Sprintf("Lesson %d", lesson),
		})
	}

	return CatalogResult{State: StateLoaded, Modules: entries}
}

type GormCatalogStore struct {
	DB *gorm.DB
}

func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{DB: db}
}

func (s *GormCatalogStore) FindModules(ctx context.Context, category, level string) ([]model.LearningModule, error) {
	q := s.DB.WithContext(ctx).
		Where("module_active = ?", true).
		Where("module_category = ?", category).
		Order("module_order_index ASC").
		Order("module_created_at ASC")
	if level != "" {
		q = q.Where("module_level = ?", level)
	}

	var rows []model.LearningModule
	err := q.Find(&rows).Error
	return rows, err
}
