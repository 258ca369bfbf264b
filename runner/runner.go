package runner

import (
	"context"
	"fmt"
	"log"

	"goc-notion-publish/models"
	"goc-notion-publish/render"
)

// DocumentSource 발행 대상 문서를 읽고 상태를 갱신하는 원본 저장소 인터페이스
type DocumentSource interface {
	ListReadyPages(ctx context.Context) ([]models.Document, error)
	FetchBlocks(ctx context.Context, pageID string) ([]models.Block, error)
	MarkPublished(ctx context.Context, pageID string) error
}

// TagResolver slug 목록을 태그 ID 목록으로 바꾸는 인터페이스
type TagResolver interface {
	ResolveTags(ctx context.Context, slugs []string) []int
}

// Publisher 발행 대상 인터페이스. REST든 브라우저 자동화든
// 컨트롤러는 어느 쪽인지 알 필요가 없습니다.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, title, html string, tagIDs []int) (*models.PublishResult, error)
}

// 문서 하나가 거치는 단계 이름 (실패 로그에 사용)
type stage string

const (
	stageRendering      stage = "rendering"
	stagePublishing     stage = "publishing"
	stageStatusUpdating stage = "status_updating"
)

// Runner Ready 문서들을 순서대로 발행하는 실행기.
// 문서 하나의 실패는 그 문서에서만 끝나고 다음 문서로 넘어갑니다.
type Runner struct {
	source     DocumentSource
	resolver   TagResolver
	rehoster   render.Rehoster
	publishers []Publisher
	dryRun     bool
}

// NewRunner 새로운 실행기를 생성합니다
func NewRunner(source DocumentSource, resolver TagResolver, rehoster render.Rehoster, publishers []Publisher, dryRun bool) *Runner {
	return &Runner{
		source:     source,
		resolver:   resolver,
		rehoster:   rehoster,
		publishers: publishers,
		dryRun:     dryRun,
	}
}

// Run Ready 문서 목록을 한 번 읽어 순서대로 처리합니다.
// 목록 조회 실패는 실행 전체를 중단하지만, 개별 문서 실패는 건너뛰고 계속합니다.
func (r *Runner) Run(ctx context.Context) error {
	docs, err := r.source.ListReadyPages(ctx)
	if err != nil {
		return fmt.Errorf("Ready 문서 목록 조회 실패: %w", err)
	}

	fmt.Printf("📄 Ready 문서 %d개를 찾았습니다.\n", len(docs))

	published := 0
	for i, doc := range docs {
		fmt.Printf("처리 중: %d/%d - %s (%s)\n", i+1, len(docs), doc.Title, doc.ID)

		if failedStage, err := r.processDocument(ctx, doc); err != nil {
			log.Printf("❌ 문서 '%s' 실패 (%s 단계): %v", doc.Title, failedStage, err)
			continue
		}

		published++
	}

	fmt.Printf("✅ 완료: %d/%d개 문서를 발행했습니다.\n", published, len(docs))
	return nil
}

// processDocument 문서 하나를 렌더링 → 태그 해석 → 발행 → 상태 갱신 순서로 처리합니다
func (r *Runner) processDocument(ctx context.Context, doc models.Document) (stage, error) {
	blocks, err := r.source.FetchBlocks(ctx, doc.ID)
	if err != nil {
		return stageRendering, err
	}
	html := render.HTML(ctx, blocks, r.rehoster)

	slugs := models.SplitSlugs(doc.TagText)
	tagIDs := r.resolver.ResolveTags(ctx, slugs)
	if len(slugs) > 0 {
		fmt.Printf("  🏷️  태그 %d개 중 %d개 해석됨\n", len(slugs), len(tagIDs))
	}

	if r.dryRun {
		fmt.Printf("  (dry-run) 발행 생략:\n%s\n", html)
		return "", nil
	}

	for _, publisher := range r.publishers {
		result, err := publisher.Publish(ctx, doc.Title, html, tagIDs)
		if err != nil {
			// 이미 성공한 대상은 되돌리지 않습니다. 문서는 Ready로 남아
			// 다음 실행에서 다시 시도됩니다.
			return stagePublishing, fmt.Errorf("%s 발행 실패: %w", publisher.Name(), err)
		}
		fmt.Printf("  ✅ [%s] 발행 완료: %s %s\n", result.Target, result.ID, result.Link)
	}

	if err := r.source.MarkPublished(ctx, doc.ID); err != nil {
		// 외부 발행은 이미 끝났으므로 여기 실패는 기록만 합니다.
		// 상태가 Ready로 남아 다음 실행에서 중복 발행될 수 있습니다.
		log.Printf("⚠️  문서 '%s' %s 단계 실패 (발행은 이미 완료됨): %v", doc.Title, stageStatusUpdating, err)
		return "", nil
	}

	return "", nil
}
