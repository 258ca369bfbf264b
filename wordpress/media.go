package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/google/uuid"
)

const defaultContentType = "image/png"

// mediaResponse 미디어 업로드 응답
type mediaResponse struct {
	SourceURL string `json:"source_url"`
}

// Rehost 원본 URL의 이미지를 내려받아 WordPress 미디어 라이브러리에 올리고,
// 업로드된 이미지의 영구 URL을 반환합니다.
// Notion의 file URL은 만료되므로 발행 전에 반드시 교체해야 합니다.
func (c *Client) Rehost(ctx context.Context, sourceURL string) (string, error) {
	data, contentType, err := c.download(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	filename := filenameFromURL(sourceURL)
	return c.uploadMedia(ctx, data, filename, contentType)
}

// download 원본 URL에서 이미지 바이트를 내려받습니다
func (c *Client) download(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("이미지 다운로드 요청 생성 실패: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("이미지 다운로드 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("이미지 다운로드 실패: 상태 코드 %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("이미지 읽기 실패: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return data, contentType, nil
}

// uploadMedia 이미지 바이트를 미디어 엔드포인트에 업로드합니다
func (c *Client) uploadMedia(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/media"), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("미디어 업로드 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("미디어 업로드 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("미디어 업로드 실패: 상태 코드 %d", resp.StatusCode)
	}

	var media mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return "", fmt.Errorf("미디어 업로드 응답 파싱 실패: %w", err)
	}

	return media.SourceURL, nil
}

// filenameFromURL URL 경로의 마지막 조각에서 파일 이름을 얻습니다.
// 쿼리 문자열은 제거하고, 이름을 얻지 못하면 임의의 이름을 만듭니다.
func filenameFromURL(sourceURL string) string {
	if u, err := url.Parse(sourceURL); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return fmt.Sprintf("image-%s", uuid.NewString())
}
