package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/storage"
)

type recordingStore struct {
	data []byte
	opts storage.SaveOptions
	url  string
	err  error
}

func (s *recordingStore) Save(ctx context.Context, data []byte, opts storage.SaveOptions) (string, error) {
	s.data = data
	s.opts = opts
	return s.url, s.err
}

func newImageServer(t *testing.T, got *ImageGenerationRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/generations", func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]string{{"url": server.URL + "/image.png"}},
		})
	})
	mux.HandleFunc("/image.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PNGDATA"))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGenerateImageReturnsProviderURL(t *testing.T) {
	var got ImageGenerationRequest
	server := newImageServer(t, &got)

	url, err := NewImageService("key", server.URL+"/generations", "", nil, nil).GenerateImage(context.Background(), "lemon tart")

	require.NoError(t, err)
	assert.Equal(t, server.URL+"/image.png", url)
	assert.Equal(t, "dall-e-3", got.Model)
	assert.Equal(t, 1, got.N)
	assert.Equal(t, "1024x1024", got.Size)
	assert.Equal(t, "hd", got.Quality)
	assert.Equal(t, "natural", got.Style)
	assert.Equal(t, "url", got.ResponseFormat)
	assert.Contains(t, got.Prompt, "food photography image of lemon tart.")
	assert.Contains(t, got.Prompt, "- Shot from a 3/4 angle to show volume and dimension")
}

func TestGenerateImagePersists(t *testing.T) {
	server := newImageServer(t, nil)
	store := &recordingStore{url: "/files/generated/a.png"}

	url, err := NewImageService("key", server.URL+"/generations", "", store, nil).GenerateImage(context.Background(), "soup")

	require.NoError(t, err)
	assert.Equal(t, "/files/generated/a.png", url)
	assert.Equal(t, "PNGDATA", string(store.data))
	assert.Equal(t, "generated", store.opts.Category)
	assert.Equal(t, "png", store.opts.Extension)
	sum := sha256.Sum256([]byte("PNGDATA"))
	assert.Equal(t, hex.EncodeToString(sum[:]), store.opts.BaseName)
	assert.True(t, store.opts.SkipIfExists)
}

func TestGenerateImageFallsBackWhenStoreFails(t *testing.T) {
	server := newImageServer(t, nil)
	store := &recordingStore{err: errors.New("bucket gone")}

	url, err := NewImageService("key", server.URL+"/generations", "", store, nil).GenerateImage(context.Background(), "soup")

	require.NoError(t, err)
	assert.Equal(t, server.URL+"/image.png", url)
}

func TestGenerateImageRequiresPrompt(t *testing.T) {
	_, err := NewImageService("key", "", "", nil, nil).GenerateImage(context.Background(), "")

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "A valid prompt is required", svcErr.Message)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateImageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Your request was rejected by the safety system."}}`))
	}))
	defer server.Close()

	_, err := NewImageService("key", server.URL, "", nil, nil).GenerateImage(context.Background(), "soup")

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "Your request was rejected by the safety system.", svcErr.Message)
}

func TestGenerateImageNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewImageService("key", server.URL, "", nil, nil).GenerateImage(context.Background(), "soup")

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Failed to generate image", svcErr.Message)
}
