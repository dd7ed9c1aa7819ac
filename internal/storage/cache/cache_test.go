package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videra/data-server/internal/content"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/storage"
	"github.com/videra/data-server/internal/storage/memory"
)

type countingContentRepository struct {
	content.Repository
	lists int
	gets  int
}

func (repo *countingContentRepository) List(ctx context.Context, query pagination.Query) (*pagination.Page[*content.Item], error) {
	repo.lists++
	return repo.Repository.List(ctx, query)
}

func (repo *countingContentRepository) GetByID(ctx context.Context, id string) (*content.Item, error) {
	repo.gets++
	return repo.Repository.GetByID(ctx, id)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("unavailable")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("unavailable")
}

func (failingStore) Generation(context.Context, string) (uint64, error) {
	return 0, errors.New("unavailable")
}

func (failingStore) Bump(context.Context, string) error {
	return errors.New("unavailable")
}

func (failingStore) Close() error {
	return nil
}

func seededContent(t *testing.T) *countingContentRepository {
	t.Helper()
	driver := memory.New()
	require.NoError(t, driver.Initialize(context.Background()))
	require.NoError(t, storage.SeedMockData(context.Background(), driver))
	t.Cleanup(driver.Close)
	return &countingContentRepository{Repository: driver.Content()}
}

func newCachingRepository(underlying content.Repository, store Store) *ContentRepository {
	return &ContentRepository{
		repo:  underlying,
		layer: &layer{store: store, lifetime: time.Minute},
	}
}

func TestContentRepository_ListIsCached(t *testing.T) {
	ctx := context.Background()
	underlying := seededContent(t)
	store := NewMemoryStore(time.Minute, 0)
	defer store.Close()
	repo := newCachingRepository(underlying, store)

	hits := testutil.ToFloat64(lookups.WithLabelValues(resourceContent, "hit"))
	query := pagination.Query{Page: 1, Limit: 4, SortBy: "views", SortOrder: pagination.SortOrderDescending}

	first, err := repo.List(ctx, query)
	require.NoError(t, err)
	second, err := repo.List(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, 1, underlying.lists)
	assert.Equal(t, first.Pagination, second.Pagination)
	require.Len(t, second.Items, 4)
	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	assert.Equal(t, hits+1, testutil.ToFloat64(lookups.WithLabelValues(resourceContent, "hit")))

	_, err = repo.List(ctx, query.WithPage(2))
	require.NoError(t, err)
	assert.Equal(t, 2, underlying.lists, "another page is another key")
}

func TestContentRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	underlying := seededContent(t)
	store := NewMemoryStore(time.Minute, 0)
	defer store.Close()
	repo := newCachingRepository(underlying, store)

	before, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)

	title := "Renamed"
	_, err = repo.Update(ctx, "1", &content.Update{Title: &title})
	require.NoError(t, err)

	after, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.NotEqual(t, before.Title, after.Title)
	assert.Equal(t, title, after.Title)
	assert.Equal(t, 2, underlying.gets)
}

func TestContentRepository_MissingItemsStayMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute, 0)
	defer store.Close()
	repo := newCachingRepository(seededContent(t), store)

	for i := 0; i < 2; i++ {
		obj, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, obj)
	}
}

func TestContentRepository_FailingStoreFallsThrough(t *testing.T) {
	underlying := seededContent(t)
	repo := newCachingRepository(underlying, failingStore{})

	page, err := repo.List(context.Background(), pagination.Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 6)

	title := "Renamed"
	_, err = repo.Update(context.Background(), "1", &content.Update{Title: &title})
	require.NoError(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute, time.Second)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	val, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), val)

	require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))
	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok, "entries expire after their own lifetime")

	gen, err := store.Generation(ctx, "content")
	require.NoError(t, err)
	assert.Zero(t, gen)
	require.NoError(t, store.Bump(ctx, "content"))
	require.NoError(t, store.Bump(ctx, "content"))
	gen, err = store.Generation(ctx, "content")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), gen)
}

func TestDriver_WrapsEveryRepository(t *testing.T) {
	underlying := memory.New()
	require.NoError(t, underlying.Initialize(context.Background()))
	defer underlying.Close()

	driver := New(underlying, NewMemoryStore(time.Minute, 0), 0)
	require.NoError(t, driver.Initialize(context.Background()))
	require.NoError(t, storage.SeedMockData(context.Background(), driver))
	defer driver.Close()

	n, err := driver.Users().CountBySignupIP(context.Background(), "192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	page, err := driver.Trends().List(context.Background(), pagination.Query{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Pagination.TotalItems)
}
