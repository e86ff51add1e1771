package catalog

// Style is a reusable artistic direction mixed into artwork prompts.
type Style struct {
	ID     string
	Name   string
	Prompt string
}

var styleOrder = []string{"cyberpunk", "minimalist", "watercolor", "oil", "cute", "3d"}

var styles = map[string]Style{
	"cyberpunk": {
		ID:     "cyberpunk",
		Name:   "Cyberpunk",
		Prompt: "High-end cyberpunk streetwear aesthetic, glitch distortion, vivid neon cyan and magenta accents, futuristic tech-wear patterns",
	},
	"minimalist": {
		ID:     "minimalist",
		Name:   "Minimalist",
		Prompt: "International Typographic Style, sophisticated Bauhaus geometric composition, premium negative space, elite brand identity feel",
	},
	"watercolor": {
		ID:     "watercolor",
		Name:   "Watercolor",
		Prompt: "Contemporary fine art watercolor, ethereal fluid layers, organic artistic bleeding effects, high-gallery quality illustration",
	},
	"oil": {
		ID:     "oil",
		Name:   "Oil Painting",
		Prompt: "Modern expressionist oil painting, rich impasto brushwork, dramatic chiaroscuro lighting, textured canvas aesthetic",
	},
	"cute": {
		ID:     "cute",
		Name:   "Kawaii",
		Prompt: "Sophisticated pop-art character design, high-end toy aesthetic, vibrant flat color blocking, professional vector charm",
	},
	"3d": {
		ID:     "3d",
		Name:   "3D Render",
		Prompt: "Hyper-realistic 3D abstract sculpture, iridescent liquid metal, glass refraction, Octane Render 5 quality, luxury texture",
	},
}

// Styles lists every style preset in display order.
func Styles() []Style {
	out := make([]Style, 0, len(styleOrder))
	for _, id := range styleOrder {
		out = append(out, styles[id])
	}
	return out
}

// StyleByID resolves a style preset. An unknown or empty id returns a
// zero Style, which contributes nothing to the prompt.
func StyleByID(id string) Style {
	return styles[id]
}
