package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTagServer 태그 조회/생성을 흉내 내는 테스트 서버.
// existing에 있는 slug는 조회에 성공하고, 없는 slug는 생성 시 nextID부터 ID를 부여합니다.
func newTagServer(t *testing.T, existing map[string]int, createCount *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/tags", r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			slug := r.URL.Query().Get("slug")
			if id, ok := existing[slug]; ok {
				json.NewEncoder(w).Encode([]map[string]any{{"id": id, "slug": slug}})
				return
			}
			json.NewEncoder(w).Encode([]map[string]any{})
		case http.MethodPost:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*createCount++
			id := 100 + *createCount
			existing[body["slug"]] = id
			json.NewEncoder(w).Encode(map[string]any{"id": id, "slug": body["slug"]})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

func TestResolveTagsReusesExisting(t *testing.T) {
	createCount := 0
	server := newTagServer(t, map[string]int{"python": 3}, &createCount)
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	ids := client.ResolveTags(context.Background(), []string{"python"})

	assert.Equal(t, []int{3}, ids)
	assert.Equal(t, 0, createCount)
}

func TestResolveTagsCreatesMissing(t *testing.T) {
	createCount := 0
	server := newTagServer(t, map[string]int{}, &createCount)
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	ids := client.ResolveTags(context.Background(), []string{"python", "security"})

	assert.Len(t, ids, 2)
	assert.Equal(t, 2, createCount)
}

func TestResolveTagsMemoizedPerRun(t *testing.T) {
	createCount := 0
	server := newTagServer(t, map[string]int{}, &createCount)
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	first := client.ResolveTags(context.Background(), []string{"python"})
	second := client.ResolveTags(context.Background(), []string{"python"})

	// 같은 실행 안에서는 생성이 한 번만 일어나고 같은 ID를 돌려줍니다
	assert.Equal(t, 1, createCount)
	assert.Equal(t, first, second)
}

func TestResolveTagsDropsFailingSlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := r.URL.Query().Get("slug")
		if r.Method == http.MethodGet && slug == "ok" {
			json.NewEncoder(w).Encode([]map[string]any{{"id": 9}})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")
	ids := client.ResolveTags(context.Background(), []string{"bad", "ok"})

	// 실패한 slug는 빠지고 나머지는 그대로 해석됩니다
	assert.Equal(t, []int{9}, ids)
}
