package models

// BlockType 블록의 종류
type BlockType string

const (
	BlockParagraph    BlockType = "paragraph"
	BlockHeading1     BlockType = "heading_1"
	BlockHeading2     BlockType = "heading_2"
	BlockHeading3     BlockType = "heading_3"
	BlockBulletedItem BlockType = "bulleted_list_item"
	BlockNumberedItem BlockType = "numbered_list_item"
	BlockCode         BlockType = "code"
	BlockImage        BlockType = "image"
	BlockUnknown      BlockType = "unknown"
)

// Block 문서 본문의 블록 하나를 나타내는 구조체.
// Type에 따라 사용되는 필드가 다릅니다.
type Block struct {
	Type     BlockType
	Text     string // 평문으로 합쳐진 rich text (paragraph, heading, list, code, unknown)
	Language string // code 블록의 언어 태그
	ImageURL string // image 블록의 원본 URL (file 또는 external)
	Caption  string // image 블록의 캡션 (선택)
	RawType  string // unknown 블록의 원래 타입 이름
}

// HeadingLevel heading 블록의 레벨(1~3)을 반환합니다. heading이 아니면 0.
func (b Block) HeadingLevel() int {
	switch b.Type {
	case BlockHeading1:
		return 1
	case BlockHeading2:
		return 2
	case BlockHeading3:
		return 3
	default:
		return 0
	}
}
