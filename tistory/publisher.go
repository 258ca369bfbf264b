package tistory

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"goc-notion-publish/models"

	"github.com/playwright-community/playwright-go"
)

const (
	uiTimeout      = 15000.0 // 개별 UI 대기 타임아웃 (ms)
	publishTimeout = 30000.0 // 발행 완료 내비게이션 대기 타임아웃 (ms)

	titleSelector  = "#post-title-inp"
	editorFrame    = "#editor-tistory_ifr"
	completeButton = "#publish-layer-btn"
	publicRadio    = "#open20"
	publishButton  = "#publish-btn"
)

// 발행이 끝나면 글 번호가 붙은 주소로 이동합니다
var publishedURLPattern = regexp.MustCompile(`tistory\.com/\d+`)

// Publisher 티스토리 에디터 UI를 브라우저 자동화로 조작하는 발행기.
// 티스토리는 공개 쓰기 API가 없어서 저장해 둔 로그인 세션(state 파일)으로
// 실제 에디터 화면을 그대로 조작합니다. UI 구조가 바뀌면 깨질 수 있습니다.
type Publisher struct {
	blogName  string
	statePath string
	headless  bool
}

// NewPublisher 새로운 티스토리 발행기를 생성합니다
func NewPublisher(blogName, statePath string, headless bool) *Publisher {
	return &Publisher{
		blogName:  blogName,
		statePath: statePath,
		headless:  headless,
	}
}

// Name 발행 대상 이름을 반환합니다
func (p *Publisher) Name() string {
	return "tistory"
}

// Publish 에디터 UI를 스크립트로 조작하여 글을 발행합니다.
// 태그 ID는 WordPress 전용이므로 여기서는 사용하지 않습니다.
// 어느 단계든 타임아웃이나 UI 변경으로 실패하면 스크린샷을 남기고 중단합니다.
func (p *Publisher) Publish(ctx context.Context, title, html string, tagIDs []int) (*models.PublishResult, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("Playwright 시작 실패: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(p.headless),
	})
	if err != nil {
		return nil, fmt.Errorf("브라우저 실행 실패: %w", err)
	}
	defer browser.Close()

	// 저장해 둔 로그인 세션을 복원합니다
	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		StorageStatePath: playwright.String(p.statePath),
	})
	if err != nil {
		return nil, fmt.Errorf("세션 복원 실패 (state 파일: %s): %w", p.statePath, err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("페이지 생성 실패: %w", err)
	}

	// "이어서 작성하시겠습니까?" 같은 임시저장 confirm 창은 닫습니다
	page.OnDialog(func(dialog playwright.Dialog) {
		dialog.Dismiss()
	})

	composeURL := fmt.Sprintf("https://%s.tistory.com/manage/newpost/", p.blogName)
	if _, err := page.Goto(composeURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return nil, p.fail(page, "에디터 이동", err)
	}

	// 제목 입력
	titleInput := page.Locator(titleSelector)
	if err := titleInput.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(uiTimeout),
	}); err != nil {
		return nil, p.fail(page, "제목 입력란 대기", err)
	}
	if err := titleInput.Fill(title); err != nil {
		return nil, p.fail(page, "제목 입력", err)
	}

	// 본문 HTML을 에디터 iframe에 직접 주입합니다 (타이핑보다 훨씬 빠름)
	editorBody := page.FrameLocator(editorFrame).Locator("body")
	if _, err := editorBody.Evaluate("(el, html) => { el.innerHTML = html; }", html); err != nil {
		return nil, p.fail(page, "본문 주입", err)
	}

	// 직접 주입하면 에디터가 내용 변경을 감지하지 못하므로
	// 글자 하나를 입력했다 지워서 변경 감지를 강제로 일으킵니다
	if err := editorBody.Click(); err != nil {
		return nil, p.fail(page, "에디터 포커스", err)
	}
	if err := page.Keyboard().Type("a"); err != nil {
		return nil, p.fail(page, "변경 감지 키 입력", err)
	}
	if err := page.Keyboard().Press("Backspace"); err != nil {
		return nil, p.fail(page, "변경 감지 키 삭제", err)
	}

	// 완료 버튼 → 발행 레이어
	if err := page.Locator(completeButton).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(uiTimeout),
	}); err != nil {
		return nil, p.fail(page, "완료 버튼 클릭", err)
	}

	finalButton := page.Locator(publishButton)
	if err := finalButton.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(uiTimeout),
	}); err != nil {
		return nil, p.fail(page, "발행 레이어 대기", err)
	}

	// 공개 설정은 있으면 선택하고, 못 찾아도 기본값으로 진행합니다
	if err := page.Locator(publicRadio).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(3000),
	}); err != nil {
		log.Printf("⚠️  공개 설정 라디오를 찾지 못했습니다. 기본 공개 설정으로 발행합니다: %v", err)
	}

	if err := finalButton.Click(); err != nil {
		return nil, p.fail(page, "발행 버튼 클릭", err)
	}

	// 발행이 끝나면 글 주소로 이동할 때까지 대기합니다
	if err := page.WaitForURL(publishedURLPattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(publishTimeout),
	}); err != nil {
		return nil, p.fail(page, "발행 완료 대기", err)
	}

	link := page.URL()
	return &models.PublishResult{
		Target: p.Name(),
		ID:     postIDFromURL(link),
		Link:   link,
	}, nil
}

// fail 실패 지점의 스크린샷을 남기고 단계 이름이 붙은 에러를 반환합니다
func (p *Publisher) fail(page playwright.Page, stage string, err error) error {
	shot := fmt.Sprintf("tistory-error-%s.png", time.Now().Format("20060102-150405"))
	if _, shotErr := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(shot),
	}); shotErr != nil {
		log.Printf("⚠️  진단 스크린샷 저장 실패: %v", shotErr)
	} else {
		log.Printf("📸 진단 스크린샷 저장: %s", shot)
	}
	return fmt.Errorf("티스토리 %s 실패: %w", stage, err)
}

// postIDFromURL 발행된 글 주소에서 글 번호를 추출합니다
func postIDFromURL(link string) string {
	m := regexp.MustCompile(`/(\d+)/?$`).FindStringSubmatch(link)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
