package tistory

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const loginURL = "https://www.tistory.com/auth/login"

// SaveSession 브라우저를 직접 띄워 티스토리 로그인을 기다린 뒤,
// 로그인된 세션(쿠키, 스토리지)을 state 파일로 저장합니다.
// 카카오 2단계 인증까지 사람이 직접 끝내야 하는 수동 부트스트랩 단계입니다.
func SaveSession(statePath string) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("Playwright 시작 실패: %w", err)
	}
	defer pw.Stop()

	// 로그인을 직접 해야 하므로 headless가 아닌 창을 띄웁니다
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if err != nil {
		return fmt.Errorf("브라우저 실행 실패: %w", err)
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext()
	if err != nil {
		return fmt.Errorf("브라우저 컨텍스트 생성 실패: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("페이지 생성 실패: %w", err)
	}

	if _, err := page.Goto(loginURL); err != nil {
		return fmt.Errorf("로그인 페이지 이동 실패: %w", err)
	}

	fmt.Println("1. 브라우저 창에서 카카오 로그인을 완료해주세요.")
	fmt.Println("2. 2단계 인증까지 끝내고 티스토리 화면이 나오면 자동으로 저장됩니다.")

	// 로그인이 끝나 티스토리 화면으로 돌아올 때까지 무한정 기다립니다
	if err := page.WaitForURL("**/tistory.com/**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(0),
	}); err != nil {
		return fmt.Errorf("로그인 완료 대기 실패: %w", err)
	}

	if _, err := browserCtx.StorageState(statePath); err != nil {
		return fmt.Errorf("세션 저장 실패: %w", err)
	}

	fmt.Printf("✅ 세션을 저장했습니다: %s\n", statePath)
	return nil
}
