package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goc-notion-publish/models"

	"github.com/jomei/notionapi"
)

const (
	pageSize       = 100
	rateLimitDelay = 350 * time.Millisecond // Notion API rate limit 방지
)

// Client Notion API로 발행 대상 문서를 읽고 상태를 갱신하는 구조체
type Client struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewClient 새로운 Notion 클라이언트를 생성합니다
func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		client:     notionapi.NewClient(notionapi.Token(apiKey)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// ListReadyPages Status가 'Ready'인 페이지들을 모두 조회합니다.
// 커서 기반 페이지네이션을 끝까지 따라가며, 받은 순서를 유지합니다.
func (c *Client) ListReadyPages(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			Filter: notionapi.PropertyFilter{
				Property: "Status",
				Select: &notionapi.SelectFilterCondition{
					Equals: "Ready",
				},
			},
			PageSize: pageSize,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := c.client.Database.Query(ctx, c.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("Ready 페이지 조회 실패: %w", err)
		}

		for _, page := range resp.Results {
			docs = append(docs, models.Document{
				ID:      string(page.ID),
				Title:   getPageTitle(page),
				TagText: getPageTagText(page),
				URL:     getPageURL(page),
			})
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
		time.Sleep(rateLimitDelay)
	}

	return docs, nil
}

// FetchBlocks 페이지의 자식 블록들을 순서대로 모두 가져옵니다.
// 하위 블록 중첩은 다루지 않고 문서 바로 아래의 블록 목록만 읽습니다.
func (c *Client) FetchBlocks(ctx context.Context, pageID string) ([]models.Block, error) {
	var blocks []models.Block
	var cursor string

	for {
		pagination := &notionapi.Pagination{PageSize: pageSize}
		if cursor != "" {
			pagination.StartCursor = notionapi.Cursor(cursor)
		}

		resp, err := c.client.Block.GetChildren(ctx, notionapi.BlockID(pageID), pagination)
		if err != nil {
			return nil, fmt.Errorf("블록 조회 실패: %w", err)
		}

		for _, block := range resp.Results {
			blocks = append(blocks, convertBlock(block))
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
		time.Sleep(rateLimitDelay)
	}

	return blocks, nil
}

// MarkPublished 페이지의 Status를 'Published'로 변경합니다.
// 발행 성공 후 한 번만 호출되며, 실패해도 이미 끝난 외부 발행은 되돌리지 않습니다.
func (c *Client) MarkPublished(ctx context.Context, pageID string) error {
	_, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			"Status": notionapi.SelectProperty{
				Select: notionapi.Option{Name: "Published"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("상태 변경 실패: %w", err)
	}
	return nil
}

// convertBlock notionapi 블록을 models.Block으로 변환합니다
func convertBlock(block notionapi.Block) models.Block {
	switch b := block.(type) {
	case *notionapi.ParagraphBlock:
		return models.Block{Type: models.BlockParagraph, Text: extractRichText(b.Paragraph.RichText)}
	case *notionapi.Heading1Block:
		return models.Block{Type: models.BlockHeading1, Text: extractRichText(b.Heading1.RichText)}
	case *notionapi.Heading2Block:
		return models.Block{Type: models.BlockHeading2, Text: extractRichText(b.Heading2.RichText)}
	case *notionapi.Heading3Block:
		return models.Block{Type: models.BlockHeading3, Text: extractRichText(b.Heading3.RichText)}
	case *notionapi.BulletedListItemBlock:
		return models.Block{Type: models.BlockBulletedItem, Text: extractRichText(b.BulletedListItem.RichText)}
	case *notionapi.NumberedListItemBlock:
		return models.Block{Type: models.BlockNumberedItem, Text: extractRichText(b.NumberedListItem.RichText)}
	case *notionapi.CodeBlock:
		return models.Block{
			Type:     models.BlockCode,
			Text:     extractRichText(b.Code.RichText),
			Language: b.Code.Language,
		}
	case *notionapi.ImageBlock:
		return models.Block{
			Type:     models.BlockImage,
			ImageURL: imageURL(b.Image),
			Caption:  extractRichText(b.Image.Caption),
		}
	// 지원하지 않는 타입 중 텍스트를 가진 블록들은 텍스트만 살립니다
	case *notionapi.QuoteBlock:
		return unknownBlock(block, b.Quote.RichText)
	case *notionapi.CalloutBlock:
		return unknownBlock(block, b.Callout.RichText)
	case *notionapi.ToggleBlock:
		return unknownBlock(block, b.Toggle.RichText)
	case *notionapi.ToDoBlock:
		return unknownBlock(block, b.ToDo.RichText)
	default:
		return unknownBlock(block, nil)
	}
}

// unknownBlock 지원하지 않는 블록을 fallback 텍스트와 함께 변환합니다
func unknownBlock(block notionapi.Block, richText []notionapi.RichText) models.Block {
	return models.Block{
		Type:    models.BlockUnknown,
		Text:    extractRichText(richText),
		RawType: string(block.GetType()),
	}
}

// imageURL 이미지 블록의 실제 URL을 반환합니다 (file 또는 external)
func imageURL(img notionapi.Image) string {
	switch {
	case img.File != nil:
		return img.File.URL
	case img.External != nil:
		return img.External.URL
	default:
		return ""
	}
}

// extractRichText RichText 배열에서 평문 텍스트를 추출합니다
func extractRichText(richText []notionapi.RichText) string {
	var parts []string
	for _, rt := range richText {
		parts = append(parts, rt.PlainText)
	}
	return strings.Join(parts, "")
}

// getPageTitle 페이지에서 제목을 추출합니다
func getPageTitle(page notionapi.Page) string {
	props := page.Properties
	if nameProp, ok := props["Name"]; ok {
		if title, ok := nameProp.(*notionapi.TitleProperty); ok {
			if t := extractRichText(title.Title); t != "" {
				return t
			}
		}
	}

	// Name 속성이 없으면 title 속성 확인
	if titleProp, ok := props["title"]; ok {
		if title, ok := titleProp.(*notionapi.TitleProperty); ok {
			if t := extractRichText(title.Title); t != "" {
				return t
			}
		}
	}

	return "Untitled"
}

// getPageTagText Tags 속성의 원본 텍스트를 추출합니다 (없으면 빈 문자열)
func getPageTagText(page notionapi.Page) string {
	if tagsProp, ok := page.Properties["Tags"]; ok {
		if rt, ok := tagsProp.(*notionapi.RichTextProperty); ok {
			return extractRichText(rt.RichText)
		}
	}
	return ""
}

// getPageURL 페이지 URL을 생성합니다
func getPageURL(page notionapi.Page) string {
	return fmt.Sprintf("https://www.notion.so/%s", strings.ReplaceAll(string(page.ID), "-", ""))
}
