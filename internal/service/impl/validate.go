package impl

import (
	"strings"
	"unicode/utf8"

	"edublog/internal/domain"
)

const (
	titleMin   = 5
	titleMax   = 255
	contentMin = 10
)

func validTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n < titleMin:
		return "", domain.Invalid("title", msgTitleTooShort)
	case n > titleMax:
		return "", domain.Invalid("title", msgTitleTooLong)
	}
	return s, nil
}

func validContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < contentMin {
		return "", domain.Invalid("content", msgContentTooShort)
	}
	return s, nil
}

func validStatus(s domain.PostStatus) (domain.PostStatus, error) {
	if s == "" {
		return domain.StatusDraft, nil
	}
	s = domain.PostStatus(strings.ToUpper(string(s)))
	if !s.Valid() {
		return "", domain.Invalid("status", msgStatusInvalid)
	}
	return s, nil
}
