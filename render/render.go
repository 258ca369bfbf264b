package render

import (
	"context"
	"fmt"
	"log"
	"strings"

	"goc-notion-publish/models"
)

// Rehoster 이미지를 내려받아 발행 대상 쪽 저장소에 다시 올리는 인터페이스
type Rehoster interface {
	Rehost(ctx context.Context, sourceURL string) (string, error)
}

// HTML 블록 목록을 HTML 문자열로 변환합니다.
// 블록 하나당 HTML 조각 하나를 만들어 줄바꿈으로 이어 붙입니다 (감싸는 루트 요소 없음).
// 이미지 블록은 rehoster로 URL을 교체하며, 리호스팅이 실패하면
// 해당 이미지만 빼고 나머지 블록 렌더링은 계속합니다.
func HTML(ctx context.Context, blocks []models.Block, rehoster Rehoster) string {
	var parts []string

	for _, block := range blocks {
		switch block.Type {
		case models.BlockParagraph:
			parts = append(parts, fmt.Sprintf("<p>%s</p>", block.Text))

		case models.BlockHeading1, models.BlockHeading2, models.BlockHeading3:
			n := block.HeadingLevel()
			parts = append(parts, fmt.Sprintf("<h%d>%s</h%d>", n, block.Text, n))

		case models.BlockBulletedItem:
			// 항목마다 따로 <ul>로 감싸는 기존 동작을 유지합니다
			parts = append(parts, fmt.Sprintf("<ul><li>%s</li></ul>", block.Text))

		case models.BlockNumberedItem:
			parts = append(parts, fmt.Sprintf("<ol><li>%s</li></ol>", block.Text))

		case models.BlockCode:
			parts = append(parts, fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>", block.Language, block.Text))

		case models.BlockImage:
			if fragment, ok := renderImage(ctx, block, rehoster); ok {
				parts = append(parts, fragment)
			}

		default:
			// 지원하지 않는 타입은 텍스트만 살립니다
			if block.Text != "" {
				parts = append(parts, fmt.Sprintf("<p>%s</p>", block.Text))
			}
		}
	}

	return strings.Join(parts, "\n")
}

// renderImage 이미지 블록을 리호스팅 후 <figure> 조각으로 변환합니다.
// 실패하면 로그만 남기고 블록을 건너뜁니다.
func renderImage(ctx context.Context, block models.Block, rehoster Rehoster) (string, bool) {
	if block.ImageURL == "" {
		return "", false
	}

	hostedURL, err := rehoster.Rehost(ctx, block.ImageURL)
	if err != nil {
		log.Printf("⚠️  이미지 리호스팅 실패, 블록을 건너뜁니다: %v", err)
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(`<figure style="text-align: center;">`)
	sb.WriteString(fmt.Sprintf(`<img src="%s" style="max-width: 100%%;" />`, hostedURL))
	if block.Caption != "" {
		sb.WriteString(fmt.Sprintf("<figcaption>%s</figcaption>", block.Caption))
	}
	sb.WriteString("</figure>")
	return sb.String(), true
}
