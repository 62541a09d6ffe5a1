package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"event-notifier/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedCategory(t *testing.T, db *gorm.DB, name string) model.Category {
	t.Helper()
	category := model.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	first := seedCategory(t, db, "축제")
	second := seedCategory(t, db, "전시/공연")

	t.Run("List keeps insertion order", func(t *testing.T) {
		categories, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, first.ID, categories[0].ID)
		assert.Equal(t, second.ID, categories[1].ID)
	})

	t.Run("GetByName", func(t *testing.T) {
		category, err := repo.GetByName(ctx, "전시/공연")
		require.NoError(t, err)
		assert.Equal(t, second.ID, category.ID)

		_, err = repo.GetByName(ctx, "없는 카테고리")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("GetByID", func(t *testing.T) {
		category, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "축제", category.Name)

		_, err = repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		err := db.Create(&model.Category{Name: "축제"}).Error
		assert.Error(t, err)
	})
}

func TestEventRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "축제")

	event := model.Event{
		Title:      "봄꽃 축제",
		Location:   "여의도 한강공원",
		StartDate:  mustDate(t, "2025-04-01"),
		EndDate:    mustDate(t, "2025-04-10"),
		CategoryID: category.ID,
	}
	require.NoError(t, repo.Create(ctx, &event))
	require.NotZero(t, event.ID)

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "봄꽃 축제", found.Title)
		assert.True(t, found.StartDate.Equal(event.StartDate))

		_, err = repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Update writes the full row", func(t *testing.T) {
		event.Title = "봄꽃 축제 (연장)"
		event.EndDate = mustDate(t, "2025-04-20")
		require.NoError(t, repo.Update(ctx, &event))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "봄꽃 축제 (연장)", found.Title)
		assert.True(t, found.EndDate.Equal(mustDate(t, "2025-04-20")))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, event.ID))

		_, err := repo.FindByID(ctx, event.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Delete of a missing event reports not found", func(t *testing.T) {
		err := repo.Delete(ctx, event.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestEventRepositoryListEndingOnOrAfter(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "축제")
	add := func(title, start, end string) {
		t.Helper()
		require.NoError(t, repo.Create(ctx, &model.Event{
			Title:      title,
			Location:   "서울",
			StartDate:  mustDate(t, start),
			EndDate:    mustDate(t, end),
			CategoryID: category.ID,
		}))
	}

	add("이미 끝난 행사", "2025-05-20", "2025-06-01")
	add("늦게 시작하는 행사", "2025-06-04", "2025-06-05")
	add("진행 중인 행사", "2025-05-30", "2025-06-10")

	t.Run("filters out events that ended before the day", func(t *testing.T) {
		events, err := repo.ListEndingOnOrAfter(ctx, mustDate(t, "2025-06-02"))
		require.NoError(t, err)
		require.Len(t, events, 2)
		for _, event := range events {
			assert.NotEqual(t, "이미 끝난 행사", event.Title)
		}
	})

	t.Run("orders by start date ascending", func(t *testing.T) {
		events, err := repo.ListEndingOnOrAfter(ctx, mustDate(t, "2025-06-02"))
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "진행 중인 행사", events[0].Title)
		assert.Equal(t, "늦게 시작하는 행사", events[1].Title)
	})

	t.Run("end date equal to the day is included", func(t *testing.T) {
		events, err := repo.ListEndingOnOrAfter(ctx, mustDate(t, "2025-06-01"))
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})
}

func TestEventReferencesMustResolve(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &model.Event{
		Title:      "고아 이벤트",
		Location:   "어딘가",
		StartDate:  mustDate(t, "2025-06-01"),
		EndDate:    mustDate(t, "2025-06-02"),
		CategoryID: 999,
	})
	assert.Error(t, err)
}

func TestMetaRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetaRepository(db)
	ctx := context.Background()

	t.Run("unset key reads as empty", func(t *testing.T) {
		value, err := repo.Get(ctx, MetaKeySeedVersion)
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, MetaKeySeedVersion, "abc123"))

		value, err := repo.Get(ctx, MetaKeySeedVersion)
		require.NoError(t, err)
		assert.Equal(t, "abc123", value)
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, MetaKeySeedVersion, "def456"))

		value, err := repo.Get(ctx, MetaKeySeedVersion)
		require.NoError(t, err)
		assert.Equal(t, "def456", value)

		var count int64
		require.NoError(t, db.Model(&model.Meta{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
