package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

// ResolveTags slug 목록을 태그 ID 목록으로 변환합니다 (get-or-create).
// 같은 slug는 실행 한 번 동안 최대 한 번만 조회/생성됩니다.
// 개별 slug의 실패는 로그만 남기고 해당 태그를 결과에서 제외합니다.
func (c *Client) ResolveTags(ctx context.Context, slugs []string) []int {
	var ids []int

	for _, slug := range slugs {
		if id, ok := c.tagCache[slug]; ok {
			ids = append(ids, id)
			continue
		}

		id, err := c.resolveTag(ctx, slug)
		if err != nil {
			log.Printf("⚠️  태그 '%s' 해석 실패, 제외합니다: %v", slug, err)
			continue
		}

		c.tagCache[slug] = id
		ids = append(ids, id)
	}

	return ids
}

// tagObject 태그 조회/생성 응답
type tagObject struct {
	ID int `json:"id"`
}

// resolveTag slug로 태그를 조회하고, 없으면 새로 만듭니다
func (c *Client) resolveTag(ctx context.Context, slug string) (int, error) {
	found, id, err := c.findTag(ctx, slug)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return c.createTag(ctx, slug)
}

// findTag slug가 정확히 일치하는 태그를 조회합니다
func (c *Client) findTag(ctx context.Context, slug string) (bool, int, error) {
	reqURL := c.endpoint("/tags") + "?slug=" + url.QueryEscape(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, 0, fmt.Errorf("태그 조회 요청 생성 실패: %w", err)
	}
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, 0, fmt.Errorf("태그 조회 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, 0, fmt.Errorf("태그 조회 실패: 상태 코드 %d", resp.StatusCode)
	}

	var tags []tagObject
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, 0, fmt.Errorf("태그 조회 응답 파싱 실패: %w", err)
	}

	if len(tags) == 0 {
		return false, 0, nil
	}
	// 첫 번째 일치 항목을 재사용합니다
	return true, tags[0].ID, nil
}

// createTag 새 태그를 생성합니다 (name과 slug 모두 slug 값 사용)
func (c *Client) createTag(ctx context.Context, slug string) (int, error) {
	body, err := json.Marshal(map[string]string{
		"name": slug,
		"slug": slug,
	})
	if err != nil {
		return 0, fmt.Errorf("태그 생성 본문 생성 실패: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/tags"), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("태그 생성 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("태그 생성 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("태그 생성 실패: 상태 코드 %d", resp.StatusCode)
	}

	var tag tagObject
	if err := json.NewDecoder(resp.Body).Decode(&tag); err != nil {
		return 0, fmt.Errorf("태그 생성 응답 파싱 실패: %w", err)
	}

	return tag.ID, nil
}
