package models

// Document Notion에서 가져온 발행 대상 문서를 나타내는 구조체
type Document struct {
	ID      string // Notion 페이지 ID
	Title   string // 페이지 제목
	TagText string // Tags 속성의 원본 텍스트 (쉼표 구분)
	URL     string // Notion 페이지 URL
}

// PublishResult 발행 대상이 돌려준 발행 결과
type PublishResult struct {
	Target string // 발행 대상 이름 (wordpress, tistory)
	ID     string // 대상이 부여한 게시물 ID
	Link   string // 게시물 영구 링크
}
