package gemini

// ImageInput is a conditioning image attached to a render request,
// already base64-encoded.
type ImageInput struct {
	DataBase64 string
	MimeType   string
}

// ImageRequest describes one generateContent call: conditioning images
// first, then the prompt text, rendered at the requested aspect ratio.
type ImageRequest struct {
	Prompt      string
	Images      []ImageInput
	AspectRatio string
}
