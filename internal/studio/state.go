// Package studio holds the single-session application state of the C2M
// storefront — account, design session, archives, orders — and the
// orchestrator that turns prompts into artwork and mockups. All state
// lives in process memory for the lifetime of the session.
package studio

import (
	"errors"
	"strings"
	"time"

	"aigc-c2m-studio/internal/catalog"
	"aigc-c2m-studio/internal/order"
	"aigc-c2m-studio/internal/pricing"
)

const (
	// GenerationCost is debited from the points balance once per
	// successful artwork generation.
	GenerationCost = 10

	StartingPoints = 2000
	StartingGold   = 500
)

var (
	ErrAuthRequired       = errors.New("login required")
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrEmptyPrompt        = errors.New("design prompt is empty")
	ErrNoArtwork          = errors.New("no artwork generated yet")
	ErrBusy               = errors.New("a generation is already in flight")
	ErrGenerationFailed   = errors.New("artwork generation failed")
	ErrPreviewFailed      = errors.New("scene preview failed")
	ErrUnknownArtwork     = errors.New("unknown artwork id")
)

// Account is the simplified identity and points ledger. Login is a
// trust-boundary gate, not authentication: any non-empty phone grants
// the fixed starting balances.
type Account struct {
	Phone    string `json:"phone"`
	Points   int    `json:"points"`
	Gold     int    `json:"gold"`
	LoggedIn bool   `json:"logged_in"`
}

// DesignSession is the in-progress creative record. Artwork and mockups
// are data URIs; mockups are only meaningful while artwork is set.
type DesignSession struct {
	Prompt          string           `json:"prompt"`
	StyleID         string           `json:"style,omitempty"`
	ReferenceImage  string           `json:"reference_image,omitempty"`
	Category        catalog.Category `json:"category"`
	Artwork         string           `json:"artwork,omitempty"`
	Mockups         []string         `json:"mockups,omitempty"`
	SourceArtworkID string           `json:"source_artwork_id,omitempty"`
}

// Selection is the current product configuration. Empty fields resolve
// through the catalog's default-first policy.
type Selection struct {
	MaterialID  string `json:"material_id,omitempty"`
	SizeOrModel string `json:"size_or_model,omitempty"`
	ColorID     string `json:"color_id,omitempty"`
}

// SavedArtwork is a value-copy archive entry; mutating the session
// afterwards never touches it.
type SavedArtwork struct {
	ID         string           `json:"id"`
	Image      string           `json:"image"`
	Prompt     string           `json:"prompt"`
	Category   catalog.Category `json:"category"`
	CreatedAt  time.Time        `json:"created_at"`
	Public     bool             `json:"public"`
	Likes      int              `json:"likes"`
	Creator    string           `json:"creator"`
	OrderCount int              `json:"order_count"`
}

// CartItem is a lightweight archived design not yet turned into an
// order.
type CartItem struct {
	ID        string           `json:"id"`
	Image     string           `json:"image"`
	Prompt    string           `json:"prompt"`
	Category  catalog.Category `json:"category"`
	CreatedAt time.Time        `json:"created_at"`
}

// State is the whole session: one account, one design session, and the
// order/gallery/cart collections. Mutations go through Store so every
// commit is atomic.
type State struct {
	Account   Account        `json:"account"`
	Session   DesignSession  `json:"session"`
	Selection Selection      `json:"selection"`
	Orders    []order.Order  `json:"orders"`
	Gallery   []SavedArtwork `json:"gallery"`
	Cart      []CartItem     `json:"cart"`

	generating bool
}

func newState() State {
	return State{
		Session:   DesignSession{Category: catalog.Phonecase},
		Selection: Selection{ColorID: "white"},
	}
}

// Login activates the account with the fixed starting balances.
// An empty phone is rejected without side effects.
func (s *State) Login(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	s.Account = Account{Phone: phone, Points: StartingPoints, Gold: StartingGold, LoggedIn: true}
	return true
}

func (s *State) SetPrompt(prompt string) {
	s.Session.Prompt = prompt
}

func (s *State) SetStyle(id string) bool {
	if id != "" && catalog.StyleByID(id).ID == "" {
		return false
	}
	s.Session.StyleID = id
	return true
}

// SetCategory switches the target product. Generated assets survive a
// category switch; only the option selection resets.
func (s *State) SetCategory(c catalog.Category) bool {
	if !catalog.Valid(c) {
		return false
	}
	s.Session.Category = c
	s.Selection = Selection{}
	return true
}

// SetReferenceImage replaces the conditioning image wholesale; the
// session owns exactly one.
func (s *State) SetReferenceImage(dataURL string) {
	s.Session.ReferenceImage = dataURL
}

// ClearArtwork drops the generated assets. Mockups are only meaningful
// with an artwork, so they go together.
func (s *State) ClearArtwork() {
	s.Session.Artwork = ""
	s.Session.Mockups = nil
}

// ResetSession starts a blank session on the same category.
func (s *State) ResetSession() {
	cat := s.Session.Category
	s.Session = DesignSession{Category: cat}
}

// RepresentativeImage prefers the first mockup, then the artwork.
func (s *State) RepresentativeImage() string {
	if len(s.Session.Mockups) > 0 {
		return s.Session.Mockups[0]
	}
	return s.Session.Artwork
}

// Quote prices the current category + selection.
func (s *State) Quote() (price int, leadTime string) {
	cat := s.Session.Category
	return pricing.Price(cat, s.Selection.MaterialID), pricing.LeadTime(cat, s.Selection.MaterialID)
}

// SaveToGallery archives the current artwork as a private entry,
// prepended most-recent-first. Without an artwork this is a no-op.
func (s *State) SaveToGallery(now time.Time) (SavedArtwork, bool) {
	if s.Session.Artwork == "" {
		return SavedArtwork{}, false
	}

	creator := s.Account.Phone
	if creator == "" {
		creator = "AI_MEMBER"
	}

	art := SavedArtwork{
		ID:        "ART-" + order.RandomCode(9),
		Image:     s.Session.Artwork,
		Prompt:    s.Session.Prompt,
		Category:  s.Session.Category,
		CreatedAt: now,
		Creator:   creator,
	}
	s.Gallery = append([]SavedArtwork{art}, s.Gallery...)
	return art, true
}

// ArchiveToCart stores the current design for later, appended in
// insertion order. Without an artwork this is a no-op.
func (s *State) ArchiveToCart(now time.Time) (CartItem, bool) {
	if s.Session.Artwork == "" {
		return CartItem{}, false
	}

	item := CartItem{
		ID:        "CART-" + order.RandomCode(9),
		Image:     s.RepresentativeImage(),
		Prompt:    s.Session.Prompt,
		Category:  s.Session.Category,
		CreatedAt: now,
	}
	s.Cart = append(s.Cart, item)
	return item, true
}

// PlaceOrder snapshots the session and configuration into a new order
// at the head of the collection. Only login is required; the
// representative image falls back to empty when nothing was generated.
func (s *State) PlaceOrder(materialID, sizeOrModel, colorID string, now time.Time) (order.Order, error) {
	if !s.Account.LoggedIn {
		return order.Order{}, ErrAuthRequired
	}

	cat := s.Session.Category
	spec, _ := catalog.Get(cat)
	material := catalog.MaterialByID(cat, materialID)
	color := catalog.ColorByID(cat, colorID)

	if sizeOrModel == "" {
		if opts := spec.SizeOptions(); len(opts) > 0 {
			sizeOrModel = opts[0]
		}
	}

	o := order.Order{
		ID:              order.NewID(),
		Category:        cat,
		ProductName:     spec.Name,
		MaterialID:      material.ID,
		SizeOrModel:     sizeOrModel,
		ColorID:         color.ID,
		UnitPrice:       pricing.Price(cat, material.ID),
		LeadTime:        pricing.LeadTime(cat, material.ID),
		Image:           s.RepresentativeImage(),
		SourceArtworkID: s.Session.SourceArtworkID,
		CreatedAt:       now,
		Fulfillment:     order.NewFulfillment(now),
	}
	s.Orders = append([]order.Order{o}, s.Orders...)
	return o, nil
}

// StartFromArtwork rebuilds the session from a gallery entry, keeping a
// back-reference to the saved copy.
func (s *State) StartFromArtwork(id string) error {
	for _, art := range s.Gallery {
		if art.ID == id {
			s.Session = DesignSession{
				Prompt:          art.Prompt,
				Category:        art.Category,
				Artwork:         art.Image,
				SourceArtworkID: art.ID,
			}
			s.Selection = Selection{}
			return nil
		}
	}
	return ErrUnknownArtwork
}
