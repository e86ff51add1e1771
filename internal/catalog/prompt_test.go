package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtworkPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes theme and product term", func(t *testing.T) {
		t.Parallel()
		got := ArtworkPrompt(Mousepad, "a dragon over mountains", "")
		assert.Contains(t, got, "Mousepad")
		assert.Contains(t, got, "Theme: a dragon over mountains.")
		assert.NotContains(t, got, "Style:")
	})

	t.Run("style preset is appended", func(t *testing.T) {
		t.Parallel()
		got := ArtworkPrompt(Bedding, "koi fish", "watercolor")
		assert.Contains(t, got, "Style: "+StyleByID("watercolor").Prompt)
	})

	t.Run("unknown style is ignored", func(t *testing.T) {
		t.Parallel()
		got := ArtworkPrompt(Bedding, "koi fish", "vaporwave")
		assert.NotContains(t, got, "Style:")
	})

	t.Run("tshirt pins the silhouette", func(t *testing.T) {
		t.Parallel()
		got := ArtworkPrompt(TShirt, "skull", "")
		assert.Contains(t, got, "Round-neck Short-sleeve T-shirt (No hoodies)")
	})
}

func TestScenePrompt(t *testing.T) {
	t.Parallel()

	t.Run("tshirt interpolates selected color", func(t *testing.T) {
		t.Parallel()
		got := ScenePrompt(TShirt, "Midnight Black")
		assert.Contains(t, got, "Midnight Black ROUND-NECK SHORT-SLEEVE T-SHIRT")
	})

	t.Run("tshirt defaults to cloud white", func(t *testing.T) {
		t.Parallel()
		got := ScenePrompt(TShirt, "")
		assert.Contains(t, got, "Cloud White")
	})

	t.Run("color only affects tshirts", func(t *testing.T) {
		t.Parallel()
		got := ScenePrompt(Mousepad, "Midnight Black")
		assert.NotContains(t, got, "Midnight Black")
		assert.Contains(t, got, "MOUSEPAD")
	})
}

func TestMockupPrompt(t *testing.T) {
	t.Parallel()

	assert.Contains(t, MockupPrompt(Phonecase), "phone case")
	assert.Contains(t, MockupPrompt(Category("HAT")), "custom product")
}

func TestStyles(t *testing.T) {
	t.Parallel()

	styles := Styles()
	assert.Len(t, styles, 6)
	for _, s := range styles {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Prompt)
		assert.Equal(t, s.ID, StyleByID(s.ID).ID)
	}

	assert.Zero(t, StyleByID("vaporwave"))
}
