package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goc-notion-publish/models"
)

// Client WordPress REST API(wp-json/wp/v2) 클라이언트.
// Application Password 기반 Basic 인증을 사용합니다.
type Client struct {
	baseURL     string
	username    string
	appPassword string
	httpClient  *http.Client
	tagCache    map[string]int // 실행 한 번 동안의 slug → tag ID 캐시
}

// NewClient 새로운 WordPress 클라이언트를 생성합니다
func NewClient(baseURL, username, appPassword string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		username:    username,
		appPassword: appPassword,
		httpClient:  http.DefaultClient,
		tagCache:    make(map[string]int),
	}
}

// Name 발행 대상 이름을 반환합니다
func (c *Client) Name() string {
	return "wordpress"
}

// endpoint wp-json/wp/v2 하위 경로의 전체 URL을 만듭니다
func (c *Client) endpoint(path string) string {
	return c.baseURL + "/wp-json/wp/v2" + path
}

// postPayload 게시물 생성 요청 본문
type postPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Tags    []int  `json:"tags,omitempty"`
}

// postResponse 게시물 생성 응답
type postResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// Publish 렌더링된 HTML을 게시물로 발행합니다.
// 태그가 없으면 tags 필드는 본문에서 생략됩니다.
func (c *Client) Publish(ctx context.Context, title, html string, tagIDs []int) (*models.PublishResult, error) {
	payload := postPayload{
		Title:   title,
		Content: html,
		Status:  "publish",
		Tags:    tagIDs,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("게시물 본문 생성 실패: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/posts"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("게시물 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("게시물 발행 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("게시물 발행 실패: 상태 코드 %d", resp.StatusCode)
	}

	var post postResponse
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("게시물 응답 파싱 실패: %w", err)
	}

	return &models.PublishResult{
		Target: c.Name(),
		ID:     strconv.Itoa(post.ID),
		Link:   post.Link,
	}, nil
}
