package studio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"aigc-c2m-studio/internal/catalog"
	"aigc-c2m-studio/internal/gemini"
)

// Generator is the remote image-rendering capability the orchestrator
// depends on.
type Generator interface {
	GenerateImages(ctx context.Context, req gemini.ImageRequest) ([]string, error)
}

type OrchestratorOptions struct {
	Store     *Store
	Generator Generator
	Logger    *slog.Logger
}

// Orchestrator sequences the dependent generation calls that turn a
// prompt into a primary artwork and contextual mockups. Both public
// operations are single-flight per session.
type Orchestrator struct {
	store  *Store
	gen    Generator
	logger *slog.Logger
}

func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		store:  opts.Store,
		gen:    opts.Generator,
		logger: logger,
	}
}

// GenerateArtwork runs the two-stage pipeline: a category-specialized
// design prompt produces the primary artwork, then a second request
// conditioned on the artwork bytes produces the initial mockup set.
// The session is only mutated, and the account only billed, after the
// artwork stage succeeds. Billing follows artwork success: a failed
// mockup stage still commits the artwork and the debit, with an empty
// mockup set.
func (o *Orchestrator) GenerateArtwork(ctx context.Context, key int64) (State, error) {
	snap, err := o.store.begin(key, func(st *State) error {
		switch {
		case !st.Account.LoggedIn:
			return ErrAuthRequired
		case st.Account.Points < GenerationCost:
			return ErrInsufficientPoints
		case strings.TrimSpace(st.Session.Prompt) == "":
			return ErrEmptyPrompt
		}
		return nil
	})
	if err != nil {
		return State{}, err
	}

	cat := snap.Session.Category
	spec, _ := catalog.Get(cat)

	artReq := gemini.ImageRequest{
		Prompt:      catalog.ArtworkPrompt(cat, snap.Session.Prompt, snap.Session.StyleID),
		AspectRatio: spec.AspectRatio,
	}
	if ref, ok := gemini.DataURLToInput(snap.Session.ReferenceImage, "image/jpeg"); ok {
		artReq.Images = []gemini.ImageInput{ref}
	}

	arts, err := o.gen.GenerateImages(ctx, artReq)
	if err != nil {
		o.store.end(key, nil)
		return State{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(arts) == 0 {
		o.store.end(key, nil)
		return State{}, ErrGenerationFailed
	}
	artwork := arts[0]

	// The mockup stage conditions on the artwork bytes, so it is
	// strictly sequenced after the artwork stage.
	mockups, err := o.renderMockups(ctx, cat, artwork, catalog.MockupPrompt(cat))
	if err != nil {
		o.logger.Warn("initial mockup stage failed", "category", cat, "err", err)
		mockups = nil
	}

	final := o.store.end(key, func(st *State) {
		st.Session.Artwork = artwork
		st.Session.Mockups = mockups
		st.Account.Points -= GenerationCost
	})
	o.logger.Info("artwork generated", "category", cat, "mockups", len(mockups), "points", final.Account.Points)
	return final, nil
}

// RefreshSceneMockup re-renders the mockup set with the higher-fidelity
// final-scene prompt. The previous mockups are retained on any failure,
// including an empty result, and nothing is billed.
func (o *Orchestrator) RefreshSceneMockup(ctx context.Context, key int64) (State, error) {
	snap, err := o.store.begin(key, func(st *State) error {
		if st.Session.Artwork == "" {
			return ErrNoArtwork
		}
		return nil
	})
	if err != nil {
		return State{}, err
	}

	cat := snap.Session.Category
	colorName := catalog.ColorByID(cat, snap.Selection.ColorID).Name

	mockups, err := o.renderMockups(ctx, cat, snap.Session.Artwork, catalog.ScenePrompt(cat, colorName))
	if err != nil {
		o.store.end(key, nil)
		return State{}, fmt.Errorf("%w: %v", ErrPreviewFailed, err)
	}
	if len(mockups) == 0 {
		o.store.end(key, nil)
		return State{}, ErrPreviewFailed
	}

	final := o.store.end(key, func(st *State) {
		st.Session.Mockups = mockups
	})
	o.logger.Info("scene mockups refreshed", "category", cat, "mockups", len(mockups))
	return final, nil
}

func (o *Orchestrator) renderMockups(ctx context.Context, cat catalog.Category, artwork, prompt string) ([]string, error) {
	cond, ok := gemini.DataURLToInput(artwork, "image/png")
	if !ok {
		return nil, fmt.Errorf("artwork is not a usable image")
	}
	return o.gen.GenerateImages(ctx, gemini.ImageRequest{
		Prompt:      prompt,
		Images:      []gemini.ImageInput{cond},
		AspectRatio: catalog.MockupAspectRatio,
	})
}
