package studio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigc-c2m-studio/internal/catalog"
)

func newTestStore() *Store {
	return NewStore(StoreOptions{
		Now: func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	store := newTestStore()

	st, ok := store.Login(1, "13800138000")
	require.True(t, ok)
	assert.True(t, st.Account.LoggedIn)
	assert.Equal(t, StartingPoints, st.Account.Points)
	assert.Equal(t, StartingGold, st.Account.Gold)

	_, ok = store.Login(2, "   ")
	assert.False(t, ok, "blank phone must not open an account")
	assert.False(t, store.Get(2).Account.LoggedIn)
}

func TestGetReturnsValueCopy(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.Login(1, "555")

	snap := store.Get(1)
	snap.Account.Points = 0
	snap.Session.Prompt = "tampered"

	fresh := store.Get(1)
	assert.Equal(t, StartingPoints, fresh.Account.Points)
	assert.Empty(t, fresh.Session.Prompt)
}

func TestSetCategory(t *testing.T) {
	t.Parallel()

	store := newTestStore()

	st := store.Update(1, func(st *State) {
		st.Session.Artwork = "data:image/png;base64,QUJD"
		st.Selection = Selection{MaterialID: "glass", SizeOrModel: "Mate 60 Pro"}
		require.True(t, st.SetCategory(catalog.TShirt))
	})

	assert.Equal(t, catalog.TShirt, st.Session.Category)
	assert.NotEmpty(t, st.Session.Artwork, "generated assets survive a category switch")
	assert.Zero(t, st.Selection, "option selection resets on category switch")

	st = store.Update(1, func(st *State) {
		assert.False(t, st.SetCategory(catalog.Category("HAT")))
	})
	assert.Equal(t, catalog.TShirt, st.Session.Category, "invalid category leaves state untouched")
}

func TestClearArtwork(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	st := store.Update(1, func(st *State) {
		st.Session.Artwork = "data:image/png;base64,QUJD"
		st.Session.Mockups = []string{"data:image/png;base64,REVG"}
		st.ClearArtwork()
	})

	assert.Empty(t, st.Session.Artwork)
	assert.Empty(t, st.Session.Mockups, "mockups are meaningless without an artwork")
}

func TestRepresentativeImage(t *testing.T) {
	t.Parallel()

	var st State
	assert.Empty(t, st.RepresentativeImage())

	st.Session.Artwork = "art"
	assert.Equal(t, "art", st.RepresentativeImage())

	st.Session.Mockups = []string{"mock1", "mock2"}
	assert.Equal(t, "mock1", st.RepresentativeImage(), "first mockup wins over the artwork")
}

func TestSaveToGallery(t *testing.T) {
	t.Parallel()

	store := newTestStore()

	_, ok := store.SaveToGallery(1)
	assert.False(t, ok, "nothing to save without an artwork")
	assert.Empty(t, store.Get(1).Gallery)

	store.Login(1, "555")
	store.Update(1, func(st *State) {
		st.SetPrompt("first")
		st.Session.Artwork = "art-1"
	})
	first, ok := store.SaveToGallery(1)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(first.ID, "ART-"))
	assert.Equal(t, "555", first.Creator)

	store.Update(1, func(st *State) {
		st.SetPrompt("second")
		st.Session.Artwork = "art-2"
	})
	second, ok := store.SaveToGallery(1)
	require.True(t, ok)

	gallery := store.Get(1).Gallery
	require.Len(t, gallery, 2)
	assert.Equal(t, second.ID, gallery[0].ID, "gallery is most-recent-first")
	assert.Equal(t, first.ID, gallery[1].ID)

	// Archived entries are value copies, later session edits never
	// reach them.
	store.Update(1, func(st *State) { st.Session.Artwork = "art-3" })
	assert.Equal(t, "art-2", store.Get(1).Gallery[0].Image)
}

func TestArchiveToCart(t *testing.T) {
	t.Parallel()

	store := newTestStore()

	_, ok := store.ArchiveToCart(1)
	assert.False(t, ok)
	assert.Empty(t, store.Get(1).Cart)

	store.Update(1, func(st *State) {
		st.SetPrompt("koi")
		st.Session.Artwork = "art"
		st.Session.Mockups = []string{"mock"}
	})

	item, ok := store.ArchiveToCart(1)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(item.ID, "CART-"))
	assert.Equal(t, "mock", item.Image, "cart stores the representative image")
}

func TestPlaceOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore()

	_, err := store.PlaceOrder(1, "", "", "")
	assert.ErrorIs(t, err, ErrAuthRequired)

	store.Login(1, "555")

	o, err := store.PlaceOrder(1, "", "", "")
	require.NoError(t, err)
	assert.Empty(t, o.Image, "no artwork means an empty order image")
	assert.Equal(t, "silicone", o.MaterialID, "material resolves default-first")
	assert.Equal(t, "iPhone 15 Pro", o.SizeOrModel, "size resolves default-first")
	assert.Equal(t, 69, o.UnitPrice)

	store.Update(1, func(st *State) {
		require.True(t, st.SetCategory(catalog.Bedding))
		st.Session.Artwork = "art"
	})
	o2, err := store.PlaceOrder(1, "silk", "2.0m bed", "")
	require.NoError(t, err)
	assert.Equal(t, 999, o2.UnitPrice)
	assert.Equal(t, "8-10 business days", o2.LeadTime)
	assert.Equal(t, "art", o2.Image)

	orders := store.Get(1).Orders
	require.Len(t, orders, 2)
	assert.Equal(t, o2.ID, orders[0].ID, "orders are most-recent-first")
	assert.Equal(t, o.ID, orders[1].ID)
}

func TestStartFromArtwork(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.Login(1, "555")
	store.Update(1, func(st *State) {
		require.True(t, st.SetCategory(catalog.Mousepad))
		st.SetPrompt("dragon")
		st.Session.Artwork = "art"
	})
	art, ok := store.SaveToGallery(1)
	require.True(t, ok)

	store.Update(1, func(st *State) { st.ResetSession() })
	require.Empty(t, store.Get(1).Session.Artwork)

	require.NoError(t, store.StartFromArtwork(1, art.ID))
	st := store.Get(1)
	assert.Equal(t, "dragon", st.Session.Prompt)
	assert.Equal(t, catalog.Mousepad, st.Session.Category)
	assert.Equal(t, "art", st.Session.Artwork)
	assert.Equal(t, art.ID, st.Session.SourceArtworkID)

	err := store.StartFromArtwork(1, "ART-NOPE")
	assert.ErrorIs(t, err, ErrUnknownArtwork)
}

func TestPlaceOrderKeepsArtworkProvenance(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.Login(1, "555")
	store.Update(1, func(st *State) {
		st.SetPrompt("dragon")
		st.Session.Artwork = "art"
	})
	art, ok := store.SaveToGallery(1)
	require.True(t, ok)
	require.NoError(t, store.StartFromArtwork(1, art.ID))

	o, err := store.PlaceOrder(1, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, art.ID, o.SourceArtworkID)
}
