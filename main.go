package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"goc-notion-publish/notion"
	"goc-notion-publish/render"
	"goc-notion-publish/runner"
	"goc-notion-publish/tistory"
	"goc-notion-publish/wordpress"

	"github.com/spf13/cobra"
)

var (
	dryRun bool
	headed bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goc-notion-publish",
		Short: "Notion 문서를 WordPress와 티스토리에 발행합니다",
		Long: `Notion 데이터베이스에서 Status가 'Ready'인 페이지를 찾아
HTML로 변환한 뒤 WordPress REST API와 티스토리 에디터(브라우저 자동화)에
발행하고, 페이지 상태를 'Published'로 갱신합니다.`,
	}

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Ready 상태의 모든 문서를 발행합니다",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := LoadConfig()
			if err != nil {
				log.Fatalf("설정 로드 실패: %v", err)
			}

			if err := runPublish(context.Background(), config); err != nil {
				log.Fatalf("발행 실행 실패: %v", err)
			}
		},
	}
	publishCmd.Flags().BoolVar(&dryRun, "dry-run", false, "발행하지 않고 렌더링 결과만 출력합니다")
	publishCmd.Flags().BoolVar(&headed, "headed", false, "티스토리 브라우저 창을 띄운 채로 실행합니다")
	rootCmd.AddCommand(publishCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "session",
		Short: "티스토리 로그인 세션을 캡처해 state 파일로 저장합니다",
		Run: func(cmd *cobra.Command, args []string) {
			// 세션 캡처는 최초 부트스트랩 단계라 나머지 설정 없이도 돌 수 있어야 합니다
			statePath := os.Getenv("TISTORY_STATE_PATH")
			if statePath == "" {
				statePath = "state.json"
			}

			if err := tistory.SaveSession(statePath); err != nil {
				log.Fatalf("세션 저장 실패: %v", err)
			}
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runPublish 설정에 맞춰 각 컴포넌트를 연결하고 발행 실행기를 돌립니다
func runPublish(ctx context.Context, config *Config) error {
	source := notion.NewClient(config.NotionAPIKey, config.NotionDatabaseID)

	var (
		resolver   runner.TagResolver = noResolver{}
		rehoster   render.Rehoster    = noRehoster{}
		publishers []runner.Publisher
	)

	if config.WPBaseURL != "" {
		wp := wordpress.NewClient(config.WPBaseURL, config.WPUsername, config.WPAppPassword)
		resolver = wp
		rehoster = wp
		publishers = append(publishers, wp)
	}

	if config.TistoryBlogName != "" {
		publishers = append(publishers, tistory.NewPublisher(config.TistoryBlogName, config.TistoryStatePath, !headed))
	}

	return runner.NewRunner(source, resolver, rehoster, publishers, dryRun).Run(ctx)
}

// noResolver WordPress가 설정되지 않았을 때 태그 없이 발행합니다
type noResolver struct{}

func (noResolver) ResolveTags(ctx context.Context, slugs []string) []int {
	return nil
}

// noRehoster 미디어 저장소(WordPress)가 없으면 이미지 블록은 건너뜁니다
type noRehoster struct{}

func (noRehoster) Rehost(ctx context.Context, sourceURL string) (string, error) {
	return "", fmt.Errorf("미디어 저장소가 설정되지 않았습니다")
}
