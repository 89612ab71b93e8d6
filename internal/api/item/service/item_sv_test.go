package itemService

import (
	"SimOCRBackend/internal/api/item"
	itemRepository "SimOCRBackend/internal/api/item/repository"
	"SimOCRBackend/internal/entity"
	"SimOCRBackend/pkg/utils"
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	mu    sync.Mutex
	items map[string]entity.Item
}

func (f *fakeItems) CreateItem(_ context.Context, it entity.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[it.ID] = it
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, id string) (entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return entity.Item{}, item.ErrItemNotFound
	}
	return it, nil
}

func (f *fakeItems) filtered(ownerID string) []entity.Item {
	var out []entity.Item
	for _, it := range f.items {
		if ownerID == "" || it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeItems) List(_ context.Context, ownerID string, limit, offset int) ([]entity.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.filtered(ownerID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeItems) Count(_ context.Context, ownerID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filtered(ownerID)), nil
}

func (f *fakeItems) UpdateItem(_ context.Context, it entity.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[it.ID]; !ok {
		return item.ErrItemNotFound
	}
	f.items[it.ID] = it
	return nil
}

func (f *fakeItems) DeleteItem(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return item.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRepo struct {
	items *fakeItems
}

func (r *fakeRepo) NewClient(bool) (itemRepository.Client, error) {
	return itemRepository.Client{
		Items:    r.items,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newService(t *testing.T) IItemService {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewItemService(logger, &fakeRepo{items: &fakeItems{items: map[string]entity.Item{}}}, utils.New())
}

var (
	alice = entity.UserLoginData{ID: "alice"}
	bob   = entity.UserLoginData{ID: "bob"}
	root  = entity.UserLoginData{ID: "root", IsSuperuser: true}
)

func TestCreateAndGetItem(t *testing.T) {
	svc := newService(t)

	it, err := svc.CreateItem(t.Context(), alice, item.CreateItemRequest{Title: "SIM", Description: "card"})
	require.NoError(t, err)
	assert.Equal(t, "alice", it.OwnerID)

	got, err := svc.GetItem(t.Context(), alice, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)

	_, err = svc.GetItem(t.Context(), bob, it.ID)
	assert.ErrorIs(t, err, item.ErrNotEnoughPermissions)

	_, err = svc.GetItem(t.Context(), root, it.ID)
	assert.NoError(t, err)

	_, err = svc.GetItem(t.Context(), alice, "missing")
	assert.ErrorIs(t, err, item.ErrItemNotFound)
}

func TestListItemsPaging(t *testing.T) {
	svc := newService(t)
	for i := 0; i < 5; i++ {
		_, err := svc.CreateItem(t.Context(), alice, item.CreateItemRequest{Title: "a"})
		require.NoError(t, err)
	}
	_, err := svc.CreateItem(t.Context(), bob, item.CreateItemRequest{Title: "b"})
	require.NoError(t, err)

	page, err := svc.ListItems(t.Context(), alice, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 2)

	page, err = svc.ListItems(t.Context(), root, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, item.DefaultPageSize, page.PageSize)

	page, err = svc.ListItems(t.Context(), bob, 9, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestUpdateItemPartial(t *testing.T) {
	svc := newService(t)
	it, err := svc.CreateItem(t.Context(), alice, item.CreateItemRequest{Title: "old", Description: "keep"})
	require.NoError(t, err)

	title := "new"
	updated, err := svc.UpdateItem(t.Context(), alice, it.ID, item.UpdateItemRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "keep", updated.Description)

	_, err = svc.UpdateItem(t.Context(), bob, it.ID, item.UpdateItemRequest{Title: &title})
	assert.ErrorIs(t, err, item.ErrNotEnoughPermissions)
}

func TestUpdateItemTouchesUpdatedAt(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	items := &fakeItems{items: map[string]entity.Item{
		"42": {ID: "42", Title: "old", OwnerID: "alice", CreatedAt: stale, UpdatedAt: stale},
	}}
	svc := NewItemService(logger, &fakeRepo{items: items}, utils.New())

	title := "new"
	updated, err := svc.UpdateItem(t.Context(), alice, "42", item.UpdateItemRequest{Title: &title})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(stale))
	assert.Equal(t, stale, updated.CreatedAt)

	stored, err := items.GetByID(t.Context(), "42")
	require.NoError(t, err)
	assert.Equal(t, updated.UpdatedAt, stored.UpdatedAt)
}

func TestDeleteItem(t *testing.T) {
	svc := newService(t)
	it, err := svc.CreateItem(t.Context(), alice, item.CreateItemRequest{Title: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteItem(t.Context(), bob, it.ID), item.ErrNotEnoughPermissions)
	require.NoError(t, svc.DeleteItem(t.Context(), alice, it.ID))
	assert.ErrorIs(t, svc.DeleteItem(t.Context(), alice, it.ID), item.ErrItemNotFound)
}

func TestNormalizePage(t *testing.T) {
	page, size := item.NormalizePage(-3, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = item.NormalizePage(4, 100)
	assert.Equal(t, 4, page)
	assert.Equal(t, 100, size)

	_, size = item.NormalizePage(1, 101)
	assert.Equal(t, 20, size)
}
