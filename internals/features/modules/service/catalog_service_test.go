package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"speaksy_backend/internals/features/modules/model"
)

type stubCatalogStore struct {
	rows []model.LearningModule
	err  error

	gotCategory string
	gotLevel    string
}

func (s *stubCatalogStore) FindModules(_ context.Context, category, level string) ([]model.LearningModule, error) {
	s.gotCategory = category
	s.gotLevel = level
	return s.rows, s.err
}

func orderIdx(n int) *int { return &n }

func TestLoad_SubtitleFromOrderIndexOrPosition(t *testing.T) {
	store := &stubCatalogStore{rows: []model.LearningModule{
		{ModuleID: uuid.New(), ModuleTitle: "Vowels", ModuleOrderIndex: orderIdx(0)},
		{ModuleID: uuid.New(), ModuleTitle: "Consonants", ModuleOrderIndex: orderIdx(4)},
		{ModuleID: uuid.New(), ModuleTitle: "Blends"}, // no index: position wins
	}}

	result := NewCatalogService(store).Load(context.Background(), model.CategoryReading, "")
	if result.State != StateLoaded {
		t.Fatalf("state = %v, want StateLoaded", result.State)
	}

	want := []string{"Lesson 1", "Lesson 5", "Lesson 3"}
	for i, w := range want {
		if result.Modules[i].Subtitle != w {
			t.Errorf("module %d subtitle = %q, want %q", i, result.Modules[i].Subtitle, w)
		}
	}
}

func TestLoad_UntitledFallback(t *testing.T) {
	store := &stubCatalogStore{rows: []model.LearningModule{{ModuleID: uuid.New()}}}

	result := NewCatalogService(store).Load(context.Background(), model.CategorySpeaking, "")
	if result.Modules[0].Title != "Untitled Module" {
		t.Errorf("title = %q, want Untitled Module", result.Modules[0].Title)
	}
}

func TestLoad_PassesFiltersThrough(t *testing.T) {
	store := &stubCatalogStore{}
	_ = NewCatalogService(store).Load(context.Background(), model.CategorySpeaking, model.LevelAdvanced)

	if store.gotCategory != "speaking" || store.gotLevel != "advanced" {
		t.Errorf("filters = (%q, %q), want (speaking, advanced)", store.gotCategory, store.gotLevel)
	}
}

func TestLoad_EmptyVsFailedAreDistinct(t *testing.T) {
	empty := NewCatalogService(&stubCatalogStore{}).Load(context.Background(), model.CategoryReading, "")
	if empty.State != StateEmpty || empty.Err != nil {
		t.Errorf("empty result = %+v, want StateEmpty with nil err", empty)
	}

	boom := errors.New("timeout")
	failed := NewCatalogService(&stubCatalogStore{err: boom}).Load(context.Background(), model.CategoryReading, "")
	if failed.State != StateFailed {
		t.Errorf("state = %v, want StateFailed", failed.State)
	}
	if !errors.Is(failed.Err, boom) {
		t.Errorf("err = %v, want %v", failed.Err, boom)
	}
}
