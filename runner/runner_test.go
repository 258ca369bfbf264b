package runner

import (
	"context"
	"fmt"
	"testing"

	"goc-notion-publish/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource 테스트용 문서 원본
type fakeSource struct {
	docs      []models.Document
	blocks    map[string][]models.Block
	listErr   error
	markErr   map[string]error
	published []string
}

func (f *fakeSource) ListReadyPages(ctx context.Context) ([]models.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

func (f *fakeSource) FetchBlocks(ctx context.Context, pageID string) ([]models.Block, error) {
	return f.blocks[pageID], nil
}

func (f *fakeSource) MarkPublished(ctx context.Context, pageID string) error {
	if err := f.markErr[pageID]; err != nil {
		return err
	}
	f.published = append(f.published, pageID)
	return nil
}

// fakeResolver slug당 ID 1을 돌려주는 태그 해석기
type fakeResolver struct{}

func (fakeResolver) ResolveTags(ctx context.Context, slugs []string) []int {
	ids := make([]int, len(slugs))
	for i := range slugs {
		ids[i] = i + 1
	}
	return ids
}

// fakeRehoster 이미지 블록이 없는 테스트에서는 호출되지 않습니다
type fakeRehoster struct{}

func (fakeRehoster) Rehost(ctx context.Context, sourceURL string) (string, error) {
	return sourceURL, nil
}

// fakePublisher failOn에 있는 제목만 실패하는 발행기
type fakePublisher struct {
	name      string
	failOn    map[string]bool
	publishes []string
}

func (f *fakePublisher) Name() string {
	return f.name
}

func (f *fakePublisher) Publish(ctx context.Context, title, html string, tagIDs []int) (*models.PublishResult, error) {
	if f.failOn[title] {
		return nil, fmt.Errorf("대상 오류")
	}
	f.publishes = append(f.publishes, title)
	return &models.PublishResult{Target: f.name, ID: "1", Link: "https://example.com/1"}, nil
}

func threeReadyDocs() *fakeSource {
	return &fakeSource{
		docs: []models.Document{
			{ID: "doc-1", Title: "첫 번째"},
			{ID: "doc-2", Title: "두 번째"},
			{ID: "doc-3", Title: "세 번째"},
		},
		blocks: map[string][]models.Block{
			"doc-1": {{Type: models.BlockParagraph, Text: "본문 1"}},
			"doc-2": {{Type: models.BlockParagraph, Text: "본문 2"}},
			"doc-3": {{Type: models.BlockParagraph, Text: "본문 3"}},
		},
		markErr: map[string]error{},
	}
}

func TestRunContinuesAfterPublishFailure(t *testing.T) {
	source := threeReadyDocs()
	publisher := &fakePublisher{name: "wordpress", failOn: map[string]bool{"두 번째": true}}

	r := NewRunner(source, fakeResolver{}, fakeRehoster{}, []Publisher{publisher}, false)
	err := r.Run(context.Background())

	require.NoError(t, err)
	// 두 번째 문서가 실패해도 첫 번째와 세 번째는 발행되고 상태가 갱신됩니다
	assert.Equal(t, []string{"첫 번째", "세 번째"}, publisher.publishes)
	assert.Equal(t, []string{"doc-1", "doc-3"}, source.published)
}

func TestRunSkipsStatusUpdateWhenAnyTargetFails(t *testing.T) {
	source := threeReadyDocs()
	wp := &fakePublisher{name: "wordpress"}
	tistory := &fakePublisher{name: "tistory", failOn: map[string]bool{"두 번째": true}}

	r := NewRunner(source, fakeResolver{}, fakeRehoster{}, []Publisher{wp, tistory}, false)
	err := r.Run(context.Background())

	require.NoError(t, err)
	// 첫 번째 대상은 성공했더라도 되돌리지 않고, 상태 갱신만 건너뜁니다
	assert.Contains(t, wp.publishes, "두 번째")
	assert.NotContains(t, tistory.publishes, "두 번째")
	assert.Equal(t, []string{"doc-1", "doc-3"}, source.published)
}

func TestRunStatusUpdateFailureDoesNotAbort(t *testing.T) {
	source := threeReadyDocs()
	source.markErr["doc-1"] = fmt.Errorf("patch 오류")
	publisher := &fakePublisher{name: "wordpress"}

	r := NewRunner(source, fakeResolver{}, fakeRehoster{}, []Publisher{publisher}, false)
	err := r.Run(context.Background())

	require.NoError(t, err)
	// 상태 갱신 실패는 기록만 하고 다음 문서로 넘어갑니다
	assert.Equal(t, []string{"첫 번째", "두 번째", "세 번째"}, publisher.publishes)
	assert.Equal(t, []string{"doc-2", "doc-3"}, source.published)
}

func TestRunAbortsWhenListFails(t *testing.T) {
	source := &fakeSource{listErr: fmt.Errorf("네트워크 오류")}

	r := NewRunner(source, fakeResolver{}, fakeRehoster{}, nil, false)
	err := r.Run(context.Background())

	assert.Error(t, err)
}

func TestRunDryRunSkipsPublish(t *testing.T) {
	source := threeReadyDocs()
	publisher := &fakePublisher{name: "wordpress"}

	r := NewRunner(source, fakeResolver{}, fakeRehoster{}, []Publisher{publisher}, true)
	err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, publisher.publishes)
	assert.Empty(t, source.published)
}
