package catalog

// Category identifies a manufacturable product line.
type Category string

const (
	Mousepad  Category = "MOUSEPAD"
	Phonecase Category = "PHONECASE"
	Bedding   Category = "BEDDING"
	TShirt    Category = "TSHIRT"
)

// Material is one finish option within a category. PriceOffset is added
// to the category base price, TimeOffset widens the lead-time window.
type Material struct {
	ID          string
	Name        string
	Desc        string
	PriceOffset int
	TimeOffset  int
}

type Color struct {
	ID    string
	Name  string
	Value string
}

// Spec is the static definition of a category: pricing base, preferred
// artwork aspect ratio and the configurable option sets.
type Spec struct {
	Name        string
	AspectRatio string
	BasePrice   int
	Materials   []Material
	Sizes       []string
	Models      []string
	Colors      []Color
}

// SizeOptions returns the size-or-model axis for the category: phone
// cases configure a device model, everything else a physical size.
func (s Spec) SizeOptions() []string {
	if len(s.Models) > 0 {
		return s.Models
	}
	return s.Sizes
}

var categoryOrder = []Category{Mousepad, Phonecase, Bedding, TShirt}

var specs = map[Category]Spec{
	Mousepad: {
		Name:        "Mousepad",
		AspectRatio: "16:9",
		BasePrice:   49,
		Materials: []Material{
			{ID: "rubber", Name: "Natural Rubber", Desc: "4mm thick / non-slip base", PriceOffset: 0, TimeOffset: 0},
			{ID: "leather", Name: "Dual-Side Leather", Desc: "Water resistant / business finish", PriceOffset: 30, TimeOffset: 1},
		},
		Sizes: []string{"200x250mm", "300x800mm", "400x900mm"},
	},
	Phonecase: {
		Name:        "Phone Case",
		AspectRatio: "9:16",
		BasePrice:   69,
		Materials: []Material{
			{ID: "silicone", Name: "Liquid Silicone", Desc: "1.8mm / skin-friendly, drop-proof", PriceOffset: 0, TimeOffset: 0},
			{ID: "glass", Name: "Tempered Glass", Desc: "2.5mm / ultra-clear, scratch-proof", PriceOffset: 20, TimeOffset: 1},
		},
		Models: []string{"iPhone 15 Pro", "Mate 60 Pro", "Xiaomi 14"},
	},
	Bedding: {
		Name:        "Bedding Set",
		AspectRatio: "1:1",
		BasePrice:   399,
		Materials: []Material{
			{ID: "cotton", Name: "Long-Staple Cotton", Desc: "60s high-density weave / breathable", PriceOffset: 0, TimeOffset: 0},
			{ID: "silk", Name: "Mulberry Silk", Desc: "19 momme / luxurious", PriceOffset: 600, TimeOffset: 5},
		},
		Sizes: []string{"1.5m bed", "1.8m bed", "2.0m bed"},
	},
	TShirt: {
		Name:        "Custom T-Shirt",
		AspectRatio: "3:4",
		BasePrice:   129,
		Materials: []Material{
			{ID: "cotton_heavy", Name: "Heavyweight Cotton", Desc: "260gsm / structured, opaque", PriceOffset: 0, TimeOffset: 0},
			{ID: "functional", Name: "Cool-Touch Dry-Fit", Desc: "Technical fabric / moisture wicking", PriceOffset: 20, TimeOffset: 2},
		},
		Sizes: []string{"S", "M", "L", "XL", "XXL", "Oversized"},
		Colors: []Color{
			{ID: "white", Name: "Cloud White", Value: "#FFFFFF"},
			{ID: "black", Name: "Midnight Black", Value: "#1A1A1A"},
			{ID: "grey", Name: "Concrete Grey", Value: "#9E9E9E"},
		},
	},
}

// Get resolves a category spec. The boolean is false for unknown ids.
func Get(c Category) (Spec, bool) {
	s, ok := specs[c]
	return s, ok
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c names a known category.
func Valid(c Category) bool {
	_, ok := specs[c]
	return ok
}

// MaterialByID resolves a material within a category. An unknown or
// empty id resolves to the first-listed material (default-first policy).
func MaterialByID(c Category, id string) Material {
	s, ok := specs[c]
	if !ok || len(s.Materials) == 0 {
		return Material{}
	}
	for _, m := range s.Materials {
		if m.ID == id {
			return m
		}
	}
	return s.Materials[0]
}

// ColorByID resolves a color within a category; unknown ids fall back
// to the first-listed color, and categories without colors return a
// zero Color.
func ColorByID(c Category, id string) Color {
	s, ok := specs[c]
	if !ok || len(s.Colors) == 0 {
		return Color{}
	}
	for _, col := range s.Colors {
		if col.ID == id {
			return col
		}
	}
	return s.Colors[0]
}
