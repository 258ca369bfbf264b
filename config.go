package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 애플리케이션 설정 구조체
type Config struct {
	NotionAPIKey     string `json:"notion_api_key"`
	NotionDatabaseID string `json:"notion_database_id"`
	WPBaseURL        string `json:"wp_base_url"`
	WPUsername       string `json:"wp_username"`
	WPAppPassword    string `json:"wp_app_password"`
	TistoryBlogName  string `json:"tistory_blog_name"`
	TistoryStatePath string `json:"tistory_state_path"`
}

// LoadConfig config.json 파일에서 설정을 로드합니다.
// 환경 변수가 설정되어 있으면 파일 값보다 우선합니다 (CI에서 사용).
func LoadConfig() (*Config, error) {
	configPath := "config.json"

	var config Config

	// 파일이 존재하지 않으면 기본 설정으로 생성
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := &Config{
			TistoryStatePath: "state.json",
		}

		data, err := json.MarshalIndent(defaultConfig, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("설정 파일 생성 실패: %w", err)
		}

		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return nil, fmt.Errorf("설정 파일 쓰기 실패: %w", err)
		}

		// 환경 변수만으로도 실행할 수 있으므로 여기서 바로 실패하지 않습니다
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}

		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("설정 파일 파싱 실패: %w", err)
		}
	}

	applyEnvOverrides(&config)

	// 필수 값 검증
	if config.NotionAPIKey == "" {
		return nil, fmt.Errorf("notion_api_key가 설정되지 않았습니다 (config.json 또는 NOTION_API_KEY)")
	}
	if config.NotionDatabaseID == "" {
		return nil, fmt.Errorf("notion_database_id가 설정되지 않았습니다 (config.json 또는 NOTION_DATABASE_ID)")
	}

	// 발행 대상이 하나도 없으면 실행할 의미가 없습니다
	if config.WPBaseURL == "" && config.TistoryBlogName == "" {
		return nil, fmt.Errorf("발행 대상이 없습니다. wp_base_url 또는 tistory_blog_name을 설정해주세요")
	}

	if config.WPBaseURL != "" && (config.WPUsername == "" || config.WPAppPassword == "") {
		return nil, fmt.Errorf("WordPress 발행에는 wp_username과 wp_app_password가 모두 필요합니다")
	}

	// state 파일 경로 기본값 설정
	if config.TistoryStatePath == "" {
		config.TistoryStatePath = "state.json"
	}

	return &config, nil
}

// applyEnvOverrides 환경 변수가 설정되어 있으면 파일 값을 덮어씁니다
func applyEnvOverrides(config *Config) {
	overrides := []struct {
		env  string
		dest *string
	}{
		{"NOTION_API_KEY", &config.NotionAPIKey},
		{"NOTION_DATABASE_ID", &config.NotionDatabaseID},
		{"WP_BASE_URL", &config.WPBaseURL},
		{"WP_USERNAME", &config.WPUsername},
		{"WP_APP_PASSWORD", &config.WPAppPassword},
		{"TISTORY_BLOG_NAME", &config.TistoryBlogName},
		{"TISTORY_STATE_PATH", &config.TistoryStatePath},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dest = v
		}
	}
}
