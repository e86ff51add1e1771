package catalog

import (
	"fmt"
	"strings"
)

// MockupAspectRatio is used for every scene render; the artwork itself
// is generated at the category's preferred ratio.
const MockupAspectRatio = "1:1"

// productTerm is the noun the generator designs for. T-shirts are
// pinned to one silhouette because the model otherwise drifts into
// hoodies and long sleeves.
func productTerm(c Category) string {
	if c == TShirt {
		return "Round-neck Short-sleeve T-shirt (No hoodies)"
	}
	if s, ok := specs[c]; ok {
		return s.Name
	}
	return "custom product"
}

// ArtworkPrompt builds the stage-one design prompt for the primary
// artwork from the user's theme and the optional style preset.
func ArtworkPrompt(c Category, theme string, styleID string) string {
	var b strings.Builder
	b.Grow(512)

	b.WriteString(fmt.Sprintf("Masterpiece professional graphic design for a %s.\n", productTerm(c)))
	b.WriteString(fmt.Sprintf("Theme: %s.", strings.TrimSpace(theme)))
	if style := StyleByID(styleID); style.Prompt != "" {
		b.WriteString(fmt.Sprintf(" Style: %s.", style.Prompt))
	}
	b.WriteString("\nWorld-class artistic composition, sophisticated visual hierarchy, high-end designer aesthetic.\n")
	b.WriteString("The design must be high-resolution, detailed, and cover the entire product surface if possible.")

	return b.String()
}

var mockupPrompts = map[Category]string{
	TShirt:    "Professional ROUND-NECK SHORT-SLEEVE T-SHIRT fashion photography. Model + flat-lay views. NO HOODIES.",
	Mousepad:  "Clean office desk scene with a RECTANGULAR computer mousepad. Keyboard and mouse included. Professional lighting.",
	Phonecase: "Aesthetic real-world lifestyle photo of a phone case. Café table setting or handheld. Natural light.",
}

// MockupPrompt builds the stage-two prompt for the quick contextual
// mockups generated together with the artwork.
func MockupPrompt(c Category) string {
	if p, ok := mockupPrompts[c]; ok {
		return p
	}
	name := "custom product"
	if s, ok := specs[c]; ok {
		name = s.Name
	}
	return fmt.Sprintf("Realistic lifestyle scene mockup for %s.", name)
}

var scenePrompts = map[Category]string{
	Phonecase: "High-end lifestyle 4K photography of a smartphone case featuring the source design. " +
		"Scene: The phone is held by a hand or placed on a textured cafe table with a cup of coffee. " +
		"Beautiful natural sunlight and aesthetic depth of field. Precise edge-to-edge design application.",
	Mousepad: "Professional 4K desktop workspace scene photography. " +
		"A large RECTANGULAR MOUSEPAD with the source design is laid on a clean desk. " +
		"A high-end mechanical keyboard and a gaming mouse are positioned on top of the mousepad. " +
		"Modern laptop in background. No bags.",
	Bedding: "Luxury 4K interior photography of a designer bedding set in a high-end modern bedroom. " +
		"Cinematic lighting, soft shadows. The design is elegantly applied to the duvet and pillows.",
}

// ScenePrompt builds the on-demand "final scene" prompt used when the
// user refreshes the mockup set. Wording is deliberately richer than
// MockupPrompt; the T-shirt variant interpolates the selected base
// color and requests a worn + flat two-panel composition.
func ScenePrompt(c Category, colorName string) string {
	if c == TShirt {
		if strings.TrimSpace(colorName) == "" {
			colorName = "Cloud White"
		}
		return fmt.Sprintf("Premium 4K fashion photography of a %s ROUND-NECK SHORT-SLEEVE T-SHIRT (strictly no hoodies). "+
			"LEFT HALF: Professional model wearing the T-shirt in a minimalist studio. "+
			"RIGHT HALF: Front and back views stacked vertically. High-end cotton texture.", colorName)
	}
	if p, ok := scenePrompts[c]; ok {
		return p
	}
	name := "custom product"
	if s, ok := specs[c]; ok {
		name = s.Name
	}
	return fmt.Sprintf("Generate a ultra-realistic 4K lifestyle photography for a %s.", name)
}
