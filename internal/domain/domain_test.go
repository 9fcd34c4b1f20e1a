package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPublishSetsTimestampOnce(t *testing.T) {
	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	var p Post
	p.Publish(StatusDraft, first)
	if p.Status != StatusDraft || p.PublishedAt != nil {
		t.Fatalf("draft: %+v", p)
	}

	p.Publish(StatusPublished, first)
	if p.PublishedAt == nil || !p.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt = %v, want %v", p.PublishedAt, first)
	}

	p.Publish(StatusArchived, later)
	p.Publish(StatusPublished, later)
	if !p.PublishedAt.Equal(first) {
		t.Fatalf("republish moved publishedAt to %v", p.PublishedAt)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now}
	if s.Expired(now) {
		t.Fatal("session expiring exactly now should still be valid")
	}
	if !s.Expired(now.Add(time.Second)) {
		t.Fatal("session should be expired after its deadline")
	}
}

func TestErrorKinds(t *testing.T) {
	if !errors.Is(Invalid("title", "x"), ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	forbidden := &ForbiddenError{Required: []Role{RoleTeacher}, Current: RoleStudent}
	if !errors.Is(forbidden, ErrForbidden) {
		t.Error("ForbiddenError should match ErrForbidden")
	}
	if !RoleStudent.Valid() || Role("ADMIN").Valid() {
		t.Error("role validation")
	}
	if !StatusArchived.Valid() || PostStatus("deleted").Valid() {
		t.Error("status validation")
	}
}
