package models

import "strings"

// SplitSlugs 쉼표로 구분된 태그 텍스트를 slug 목록으로 나눕니다.
// 앞뒤 공백은 제거하고 빈 토큰은 버립니다.
func SplitSlugs(tagText string) []string {
	var slugs []string
	for _, token := range strings.Split(tagText, ",") {
		slug := strings.TrimSpace(token)
		if slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}
