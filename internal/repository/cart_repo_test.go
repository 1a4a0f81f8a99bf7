package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artmart/backend/internal/db"
	"github.com/artmart/backend/internal/model"
)

func newRepo(t *testing.T) *CartRepository {
	t.Helper()
	testDB, err := db.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })
	return NewCartRepository(testDB)
}

func newSession(t *testing.T, repo *CartRepository) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, repo.CreateSession(context.Background(), id))
	return id
}

func TestSessionExists(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	sid := newSession(t, repo)

	ok, err := repo.SessionExists(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SessionExists(ctx, "no-such-session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddAndGetItem(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	sid := newSession(t, repo)

	item := &model.CartItem{
		ArtworkID: 42,
		Price:     3170,
		FrameConfig: model.FrameConfig{
			PrintSize:  model.PrintSizeMedium,
			FrameStyle: "classic",
			FrameWidth: 30,
			MatColor:   "mint",
			MatWidth:   5,
		},
	}
	require.NoError(t, repo.AddItem(ctx, sid, item))

	got, err := repo.GetItem(ctx, sid, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.CartItemID)
	assert.Equal(t, item.Price, got.Price)
	assert.Equal(t, item.FrameConfig, got.FrameConfig)
}

func TestAddItemReplacesSameArtwork(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	sid := newSession(t, repo)

	item := &model.CartItem{
		ArtworkID: 42,
		Price:     3170,
		FrameConfig: model.FrameConfig{
			PrintSize:  model.PrintSizeSmall,
			FrameStyle: "classic",
			FrameWidth: 20,
		},
	}
	require.NoError(t, repo.AddItem(ctx, sid, item))

	item.FrameWidth = 40
	item.Price = 3340
	require.NoError(t, repo.AddItem(ctx, sid, item))

	items, err := repo.ListItems(ctx, sid)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].FrameWidth)
}

func TestGetItemNotFound(t *testing.T) {
	repo := newRepo(t)
	sid := newSession(t, repo)

	_, err := repo.GetItem(context.Background(), sid, 999)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	sid := newSession(t, repo)

	item := &model.CartItem{
		ArtworkID: 42,
		Price:     3170,
		FrameConfig: model.FrameConfig{
			PrintSize:  model.PrintSizeSmall,
			FrameStyle: "natural",
			FrameWidth: 25,
		},
	}
	require.NoError(t, repo.AddItem(ctx, sid, item))

	require.NoError(t, repo.DeleteItem(ctx, sid, 42))
	assert.ErrorIs(t, repo.DeleteItem(ctx, sid, 42), model.ErrCartItemNotFound)
}

func TestClearCart(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	sid := newSession(t, repo)

	for _, id := range []int64{1, 2, 3} {
		item := &model.CartItem{
			ArtworkID: id,
			Price:     3000,
			FrameConfig: model.FrameConfig{
				PrintSize:  model.PrintSizeSmall,
				FrameStyle: "classic",
				FrameWidth: 20,
			},
		}
		require.NoError(t, repo.AddItem(ctx, sid, item))
	}

	require.NoError(t, repo.ClearCart(ctx, sid))

	items, err := repo.ListItems(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, items)
}

// Carts are isolated per shopper session: for any two sessions, items added
// to one never appear in the other, and a round trip through the database
// preserves every field of the item.
func TestCartIsolationProperty(t *testing.T) {
	testDB, err := db.NewTestDB()
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	defer testDB.Close()

	repo := NewCartRepository(testDB)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	sizeGen := gen.OneConstOf(model.PrintSizeSmall, model.PrintSizeMedium, model.PrintSizeLarge)

	properties.Property("items round-trip and stay in their own cart", prop.ForAll(
		func(artworkID int64, price int, size model.PrintSize, frameWidth, matWidth int) bool {
			if artworkID <= 0 {
				artworkID = -artworkID + 1
			}

			sidA := uuid.New().String()
			sidB := uuid.New().String()
			if err := repo.CreateSession(ctx, sidA); err != nil {
				return false
			}
			if err := repo.CreateSession(ctx, sidB); err != nil {
				return false
			}

			item := &model.CartItem{
				ArtworkID: artworkID,
				Price:     price,
				FrameConfig: model.FrameConfig{
					PrintSize:  size,
					FrameStyle: "classic",
					FrameWidth: frameWidth,
					MatWidth:   matWidth,
				},
			}
			if err := repo.AddItem(ctx, sidA, item); err != nil {
				return false
			}

			got, err := repo.GetItem(ctx, sidA, artworkID)
			if err != nil {
				return false
			}
			if got.Price != price || got.PrintSize != size ||
				got.FrameWidth != frameWidth || got.MatWidth != matWidth {
				return false
			}

			// The other session's cart stays empty.
			other, err := repo.ListItems(ctx, sidB)
			if err != nil {
				return false
			}
			return len(other) == 0
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(0, 1_000_000),
		sizeGen,
		gen.IntRange(model.MinFrameWidth, model.MaxFrameWidth),
		gen.IntRange(model.MinMatWidth, model.MaxMatWidth),
	))

	properties.TestingRun(t)
}
