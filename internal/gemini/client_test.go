package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func imageResponse(datas ...string) generateContentResponse {
	var parts []part
	for _, d := range datas {
		parts = append(parts, part{InlineData: &blob{Data: d, MimeType: "image/png"}})
	}
	parts = append(parts, part{Text: "here you go"})
	return generateContentResponse{
		Candidates: []candidate{{Content: content{Parts: parts}}},
	}
}

func TestGenerateImages(t *testing.T) {
	t.Parallel()

	var got generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash-image:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(imageResponse("QUJD", "REVG"))
	})

	images, err := client.GenerateImages(context.Background(), ImageRequest{
		Prompt:      "a dragon",
		AspectRatio: "16:9",
		Images:      []ImageInput{{DataBase64: "UkVG", MimeType: "image/jpeg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"data:image/png;base64,QUJD",
		"data:image/png;base64,REVG",
	}, images)

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "UkVG", parts[0].InlineData.Data)
	assert.Equal(t, "a dragon", parts[1].Text)

	assert.Equal(t, []string{"IMAGE"}, got.GenerationConfig.ResponseModalities)
	require.NotNil(t, got.GenerationConfig.ImageConfig)
	assert.Equal(t, "16:9", got.GenerationConfig.ImageConfig.AspectRatio)
}

func TestGenerateImagesEmptyPrompt(t *testing.T) {
	t.Parallel()

	client := New(Options{HTTPClient: http.DefaultClient})
	_, err := client.GenerateImages(context.Background(), ImageRequest{Prompt: "   "})
	assert.Error(t, err)
}

func TestGenerateImagesAPIError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	})

	_, err := client.GenerateImages(context.Background(), ImageRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateImagesAspectRatioFallback(t *testing.T) {
	t.Parallel()

	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.GenerationConfig.ImageConfig != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`Invalid JSON payload received. Unknown name "imageConfig"`))
			return
		}
		_ = json.NewEncoder(w).Encode(imageResponse("QUJD"))
	})

	images, err := client.GenerateImages(context.Background(), ImageRequest{
		Prompt:      "x",
		AspectRatio: "9:16",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"data:image/png;base64,QUJD"}, images)
	assert.Equal(t, 2, calls, "the ratio-less retry happens exactly once")
}

func TestGenerateImagesNoCandidates(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateContentResponse{})
	})

	images, err := client.GenerateImages(context.Background(), ImageRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, images, "a text-only answer yields no images, not an error")
}

func TestDataURLToInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		fallback string
		want     ImageInput
		ok       bool
	}{
		{
			name:     "full data uri keeps its media type",
			input:    "data:image/jpeg;base64,UkVG",
			fallback: "image/png",
			want:     ImageInput{DataBase64: "UkVG", MimeType: "image/jpeg"},
			ok:       true,
		},
		{
			name:     "bare base64 uses the fallback",
			input:    "UkVG",
			fallback: "image/png",
			want:     ImageInput{DataBase64: "UkVG", MimeType: "image/png"},
			ok:       true,
		},
		{name: "empty input", input: "", fallback: "image/png", ok: false},
		{name: "uri without payload", input: "data:image/png;base64,", fallback: "image/png", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			got, ok := DataURLToInput(tt.input, tt.fallback)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
