package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRehost(t *testing.T) {
	imageData := []byte("fake-image-bytes")

	// Notion 쪽 원본 이미지 서버
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(imageData)
	}))
	defer imageServer.Close()

	var (
		uploadedBody        []byte
		uploadedDisposition string
		uploadedContentType string
	)

	// WordPress 미디어 엔드포인트
	wpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/media", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		uploadedBody, _ = io.ReadAll(r.Body)
		uploadedDisposition = r.Header.Get("Content-Disposition")
		uploadedContentType = r.Header.Get("Content-Type")

		json.NewEncoder(w).Encode(map[string]any{
			"source_url": "https://blog.example.com/wp-content/uploads/photo.jpg",
		})
	}))
	defer wpServer.Close()

	client := NewClient(wpServer.URL, "user", "pass")
	url, err := client.Rehost(context.Background(), imageServer.URL+"/files/photo.jpg?X-Amz-Expires=3600")

	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/wp-content/uploads/photo.jpg", url)
	assert.Equal(t, imageData, uploadedBody)
	// 파일 이름은 쿼리 문자열을 뗀 마지막 경로 조각입니다
	assert.Equal(t, `attachment; filename="photo.jpg"`, uploadedDisposition)
	assert.Equal(t, "image/jpeg", uploadedContentType)
}

func TestRehostDefaultsContentType(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Content-Type 헤더 없이 응답
		w.Header()["Content-Type"] = nil
		w.Write([]byte("bytes"))
	}))
	defer imageServer.Close()

	var uploadedContentType string
	wpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploadedContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{"source_url": "https://blog.example.com/a.png"})
	}))
	defer wpServer.Close()

	client := NewClient(wpServer.URL, "user", "pass")
	_, err := client.Rehost(context.Background(), imageServer.URL+"/a.png")

	require.NoError(t, err)
	assert.Equal(t, defaultContentType, uploadedContentType)
}

func TestRehostDownloadFailure(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer imageServer.Close()

	client := NewClient("https://blog.example.com", "user", "pass")
	_, err := client.Rehost(context.Background(), imageServer.URL+"/gone.png")

	assert.Error(t, err)
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "photo.png", filenameFromURL("https://files.notion.so/abc/photo.png?X-Amz-Expires=3600"))
	assert.Equal(t, "photo.png", filenameFromURL("https://example.com/photo.png"))

	// 경로에서 이름을 얻지 못하면 임의의 이름을 만듭니다
	fallback := filenameFromURL("https://example.com/")
	assert.True(t, strings.HasPrefix(fallback, "image-"))
}
