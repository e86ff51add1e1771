package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aigc-c2m-studio/internal/catalog"
	"aigc-c2m-studio/internal/studio"
	"aigc-c2m-studio/internal/telegram"
)

type Options struct {
	Telegram     *telegram.Client
	Store        *studio.Store
	Orchestrator *studio.Orchestrator
	Logger       *slog.Logger
}

// Handler drives the studio from Telegram messages: free text becomes
// the design prompt and triggers a render, photos become the reference
// image, commands configure the product and manage orders.
type Handler struct {
	tg     *telegram.Client
	store  *studio.Store
	orch   *studio.Orchestrator
	logger *slog.Logger
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tg:     opts.Telegram,
		store:  opts.Store,
		orch:   opts.Orchestrator,
		logger: logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	if len(msg.Photo) > 0 {
		return h.handlePhoto(ctx, chatID, userID, msg)
	}

	if msg.Text != "" {
		return h.handlePrompt(ctx, chatID, userID, msg.Text)
	}

	return nil
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return h.tg.SendText(chatID,
			"🏭 AIGC C2M Studio\n\n"+
				"Describe your design in a message and I will render the artwork plus product mockups.\n"+
				"Send a photo to use it as a style reference.\n\n"+
				"Commands:\n"+
				"/login <phone> - Open an account (2000 points)\n"+
				"/category <id> - Pick a product, see /catalog\n"+
				"/style <id> - Pick an art style\n"+
				"/material /size /color - Configure the product\n"+
				"/quote - Price and lead time\n"+
				"/preview - Re-render the scene mockup\n"+
				"/order - Place the order\n"+
				"/help - Everything else",
		)
	case "help":
		return h.tg.SendText(chatID,
			"🏭 Commands\n\n"+
				"/login <phone> — open an account\n"+
				"/balance — points and gold\n"+
				"/catalog — products, materials, styles\n"+
				"/category <id> — target product\n"+
				"/style <id> — art style\n"+
				"/material <id>, /size <value>, /color <id> — configuration\n"+
				"/quote — price + lead time\n"+
				"/preview — refresh the scene render (free)\n"+
				"/order — place the order, /orders — track them\n"+
				"/save — archive artwork to the gallery, /gallery — list it\n"+
				"/archive — park the design in the cart, /cart — list it\n"+
				"/remix <art id> — restart from a saved artwork\n"+
				"/reset — blank session",
		)
	case "login":
		if _, ok := h.store.Login(userID, args); !ok {
			return h.tg.SendText(chatID, "Usage: /login <phone>")
		}
		return h.tg.SendText(chatID, fmt.Sprintf("✅ Welcome! %d points and %d gold credited. Describe your design to start.", studio.StartingPoints, studio.StartingGold))
	case "balance":
		st := h.store.Get(userID)
		if !st.Account.LoggedIn {
			return h.tg.SendText(chatID, "Not logged in yet. /login <phone>")
		}
		return h.tg.SendText(chatID, fmt.Sprintf("💰 %d points, %d gold", st.Account.Points, st.Account.Gold))
	case "catalog":
		return h.tg.SendText(chatID, renderCatalog())
	case "category":
		cat := catalog.Category(strings.ToUpper(args))
		var ok bool
		h.store.Update(userID, func(st *studio.State) { ok = st.SetCategory(cat) })
		if !ok {
			return h.tg.SendText(chatID, "Unknown category. See /catalog for the list.")
		}
		spec, _ := catalog.Get(cat)
		return h.tg.SendText(chatID, fmt.Sprintf("Now designing for: %s (base ¥%d, artwork %s)", spec.Name, spec.BasePrice, spec.AspectRatio))
	case "style":
		var ok bool
		h.store.Update(userID, func(st *studio.State) { ok = st.SetStyle(args) })
		if !ok {
			return h.tg.SendText(chatID, "Unknown style. See /catalog for the list.")
		}
		if args == "" {
			return h.tg.SendText(chatID, "Style cleared.")
		}
		return h.tg.SendText(chatID, "Style set: "+catalog.StyleByID(args).Name)
	case "material":
		st := h.store.Update(userID, func(st *studio.State) { st.Selection.MaterialID = args })
		price, lead := st.Quote()
		m := catalog.MaterialByID(st.Session.Category, st.Selection.MaterialID)
		return h.tg.SendText(chatID, fmt.Sprintf("Material: %s (%s)\n¥%d · %s", m.Name, m.Desc, price, lead))
	case "size":
		h.store.Update(userID, func(st *studio.State) { st.Selection.SizeOrModel = args })
		return h.tg.SendText(chatID, "Size/model set: "+args)
	case "color":
		st := h.store.Update(userID, func(st *studio.State) { st.Selection.ColorID = args })
		col := catalog.ColorByID(st.Session.Category, st.Selection.ColorID)
		if col.ID == "" {
			return h.tg.SendText(chatID, "This product has no base color options.")
		}
		return h.tg.SendText(chatID, "Base color: "+col.Name)
	case "quote":
		st := h.store.Get(userID)
		spec, _ := catalog.Get(st.Session.Category)
		price, lead := st.Quote()
		return h.tg.SendText(chatID, fmt.Sprintf("%s\n¥%d · %s", spec.Name, price, lead))
	case "preview":
		return h.preview(ctx, chatID, userID)
	case "order":
		return h.placeOrder(chatID, userID)
	case "orders":
		return h.listOrders(chatID, userID)
	case "save":
		art, ok := h.store.SaveToGallery(userID)
		if !ok {
			return h.tg.SendText(chatID, "Nothing to save yet — generate an artwork first.")
		}
		return h.tg.SendText(chatID, "🖼 Saved to your gallery as "+art.ID)
	case "gallery":
		return h.listGallery(chatID, userID)
	case "archive":
		item, ok := h.store.ArchiveToCart(userID)
		if !ok {
			return h.tg.SendText(chatID, "Nothing to archive yet — generate an artwork first.")
		}
		return h.tg.SendText(chatID, "📦 Parked in your cart as "+item.ID)
	case "cart":
		return h.listCart(chatID, userID)
	case "remix":
		if err := h.store.StartFromArtwork(userID, args); err != nil {
			return h.sendError(chatID, err)
		}
		st := h.store.Get(userID)
		return h.tg.SendPhotoDataURL(chatID, st.Session.Artwork, "Session restarted from "+args+". /preview or /order when ready.")
	case "reset":
		h.store.Update(userID, func(st *studio.State) { st.ResetSession() })
		return h.tg.SendText(chatID, "Session cleared. Describe a new design.")
	default:
		return h.tg.SendText(chatID, "Unknown command. /help lists everything.")
	}
}

func (h *Handler) handlePrompt(ctx context.Context, chatID int64, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	h.store.Update(userID, func(st *studio.State) { st.SetPrompt(text) })
	return h.generate(ctx, chatID, userID)
}

func (h *Handler) handlePhoto(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	// Largest rendition of the photo.
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	dataURL, err := h.tg.DownloadDataURL(ctx, fileID)
	if err != nil {
		h.logger.Error("reference download failed", "err", err)
		return h.tg.SendText(chatID, "Could not download that image, try sending it again.")
	}

	h.store.Update(userID, func(st *studio.State) { st.SetReferenceImage(dataURL) })

	caption := strings.TrimSpace(msg.Caption)
	if caption == "" {
		return h.tg.SendText(chatID, "📎 Reference image attached. Describe your design to render with it.")
	}

	h.store.Update(userID, func(st *studio.State) { st.SetPrompt(caption) })
	return h.generate(ctx, chatID, userID)
}

func (h *Handler) generate(ctx context.Context, chatID int64, userID int64) error {
	h.tg.SendTyping(chatID)
	_ = h.tg.SendText(chatID, "🎨 Rendering your design, this can take a minute...")

	st, err := h.orch.GenerateArtwork(ctx, userID)
	if err != nil {
		return h.sendError(chatID, err)
	}

	caption := fmt.Sprintf("✅ Artwork ready — %d points left.\n/preview refreshes the scene, /order places the order.", st.Account.Points)
	if err := h.tg.SendPhotoDataURL(chatID, st.Session.Artwork, caption); err != nil {
		return err
	}
	for _, m := range st.Session.Mockups {
		if err := h.tg.SendPhotoDataURL(chatID, m, ""); err != nil {
			return err
		}
	}
	if len(st.Session.Mockups) == 0 {
		return h.tg.SendText(chatID, "No scene mockups this round — /preview to retry them for free.")
	}
	return nil
}

func (h *Handler) preview(ctx context.Context, chatID int64, userID int64) error {
	h.tg.SendTyping(chatID)

	st, err := h.orch.RefreshSceneMockup(ctx, userID)
	if err != nil {
		return h.sendError(chatID, err)
	}

	for i, m := range st.Session.Mockups {
		caption := ""
		if i == 0 {
			caption = "🏞 Fresh scene render."
		}
		if err := h.tg.SendPhotoDataURL(chatID, m, caption); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) placeOrder(chatID int64, userID int64) error {
	st := h.store.Get(userID)
	o, err := h.store.PlaceOrder(userID, st.Selection.MaterialID, st.Selection.SizeOrModel, st.Selection.ColorID)
	if err != nil {
		return h.sendError(chatID, err)
	}

	text := fmt.Sprintf("🧾 Order %s placed\n%s · ¥%d · %s\nStatus: %s", o.ID, o.ProductName, o.UnitPrice, o.LeadTime, o.Fulfillment.Status)
	if o.Image == "" {
		return h.tg.SendText(chatID, text)
	}
	return h.tg.SendPhotoDataURL(chatID, o.Image, text)
}

func (h *Handler) listOrders(chatID int64, userID int64) error {
	st := h.store.Get(userID)
	if len(st.Orders) == 0 {
		return h.tg.SendText(chatID, "No orders yet.")
	}

	var b strings.Builder
	b.WriteString("📦 Orders (newest first):\n")
	for _, o := range st.Orders {
		fmt.Fprintf(&b, "\n%s — %s\n  %s · step %d/6 · ¥%d\n", o.ID, o.ProductName, o.Fulfillment.Status, o.Fulfillment.Step, o.UnitPrice)
		for _, u := range o.Fulfillment.Updates {
			fmt.Fprintf(&b, "  %s %s\n", u.Time.Format("01-02 15:04"), u.Msg)
		}
	}
	return h.tg.SendText(chatID, b.String())
}

func (h *Handler) listGallery(chatID int64, userID int64) error {
	st := h.store.Get(userID)
	if len(st.Gallery) == 0 {
		return h.tg.SendText(chatID, "Gallery is empty. /save archives the current artwork.")
	}

	var b strings.Builder
	b.WriteString("🖼 Gallery (newest first):\n")
	for _, a := range st.Gallery {
		fmt.Fprintf(&b, "\n%s — %q (%s)\n", a.ID, a.Prompt, a.Category)
	}
	b.WriteString("\n/remix <art id> restarts a session from an entry.")
	return h.tg.SendText(chatID, b.String())
}

func (h *Handler) listCart(chatID int64, userID int64) error {
	st := h.store.Get(userID)
	if len(st.Cart) == 0 {
		return h.tg.SendText(chatID, "Cart is empty. /archive parks the current design.")
	}

	var b strings.Builder
	b.WriteString("🛒 Cart:\n")
	for _, c := range st.Cart {
		fmt.Fprintf(&b, "\n%s — %q (%s)\n", c.ID, c.Prompt, c.Category)
	}
	return h.tg.SendText(chatID, b.String())
}

func (h *Handler) sendError(chatID int64, err error) error {
	switch {
	case errors.Is(err, studio.ErrAuthRequired):
		return h.tg.SendText(chatID, "🔒 Log in first: /login <phone>")
	case errors.Is(err, studio.ErrInsufficientPoints):
		return h.tg.SendText(chatID, fmt.Sprintf("💸 Not enough points — each render costs %d. Top up to continue.", studio.GenerationCost))
	case errors.Is(err, studio.ErrEmptyPrompt):
		return h.tg.SendText(chatID, "Describe your design first, then I can render it.")
	case errors.Is(err, studio.ErrBusy):
		return h.tg.SendText(chatID, "⏳ A render is already running for this session, wait for it to finish.")
	case errors.Is(err, studio.ErrNoArtwork):
		return h.tg.SendText(chatID, "Generate an artwork first — just describe your design.")
	case errors.Is(err, studio.ErrUnknownArtwork):
		return h.tg.SendText(chatID, "No gallery entry with that id. /gallery lists them.")
	case errors.Is(err, studio.ErrPreviewFailed):
		return h.tg.SendText(chatID, "Scene render failed, previous mockups kept. /preview to retry.")
	case errors.Is(err, studio.ErrGenerationFailed):
		return h.tg.SendText(chatID, "❌ The render engine is busy, nothing was charged. Try the same prompt again.")
	default:
		h.logger.Error("operation failed", "err", err)
		return h.tg.SendText(chatID, "Something went wrong, please retry.")
	}
}

func renderCatalog() string {
	var b strings.Builder
	b.WriteString("🗂 Products:\n")
	for _, c := range catalog.Categories() {
		spec, _ := catalog.Get(c)
		fmt.Fprintf(&b, "\n%s — %s, base ¥%d\n", c, spec.Name, spec.BasePrice)
		for _, m := range spec.Materials {
			fmt.Fprintf(&b, "  material %s: %s", m.ID, m.Name)
			if m.PriceOffset > 0 {
				fmt.Fprintf(&b, " (+¥%d)", m.PriceOffset)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  sizes: %s\n", strings.Join(spec.SizeOptions(), ", "))
		if len(spec.Colors) > 0 {
			names := make([]string, 0, len(spec.Colors))
			for _, col := range spec.Colors {
				names = append(names, col.ID)
			}
			fmt.Fprintf(&b, "  colors: %s\n", strings.Join(names, ", "))
		}
	}

	b.WriteString("\n🎨 Styles:\n")
	for _, s := range catalog.Styles() {
		fmt.Fprintf(&b, "  %s — %s\n", s.ID, s.Name)
	}
	return b.String()
}
