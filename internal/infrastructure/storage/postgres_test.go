package storage

import (
	"strings"
	"testing"

	"newsingest/internal/domain"
)

func TestBuildUpsertFullPatch(t *testing.T) {
	url := "https://example.com/story"
	title := "Story Title"
	content := "cleaned text"
	summary := "- point"
	status := domain.StatusCompleted

	query, args, err := buildUpsert("id-1", domain.ArticlePatch{
		URL:      &url,
		Title:    &title,
		Content:  &content,
		Keywords: []string{"story", "title"},
		Summary:  &summary,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("buildUpsert returned error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO articles (id,url,title,content,keywords,summary,processing_status)") {
		t.Errorf("unexpected column list: %s", query)
	}
	for _, assignment := range []string{
		"url = EXCLUDED.url",
		"title = EXCLUDED.title",
		"content = EXCLUDED.content",
		"keywords = EXCLUDED.keywords",
		"summary = EXCLUDED.summary",
		"processing_status = EXCLUDED.processing_status",
		"updated_at = NOW()",
	} {
		if !strings.Contains(query, assignment) {
			t.Errorf("query missing assignment %q: %s", assignment, query)
		}
	}
	if !strings.Contains(query, "ON CONFLICT (id) DO UPDATE SET") {
		t.Errorf("query is not a merge-write: %s", query)
	}

	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}
	if args[0] != "id-1" || args[1] != url || args[2] != title {
		t.Errorf("unexpected leading args: %v", args)
	}
	if args[6] != string(domain.StatusCompleted) {
		t.Errorf("unexpected status arg: %v", args[6])
	}
}

func TestBuildUpsertSkipsNilFields(t *testing.T) {
	status := domain.StatusFailedNoContent

	query, args, err := buildUpsert("id-2", domain.ArticlePatch{Status: &status})
	if err != nil {
		t.Fatalf("buildUpsert returned error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO articles (id,processing_status)") {
		t.Errorf("unexpected column list: %s", query)
	}
	for _, column := range []string{"url", "title", "description", "raw_content", "content", "keywords", "summary"} {
		if strings.Contains(query, column+" = EXCLUDED") {
			t.Errorf("nil field %s leaked into update: %s", column, query)
		}
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestBuildUpsertEmptyPatchDoesNothingOnConflict(t *testing.T) {
	query, args, err := buildUpsert("id-3", domain.ArticlePatch{})
	if err != nil {
		t.Fatalf("buildUpsert returned error: %v", err)
	}

	if !strings.Contains(query, "ON CONFLICT (id) DO NOTHING") {
		t.Errorf("empty patch should not update existing rows: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected only the id arg, got %d", len(args))
	}
}

func TestBuildUpsertUsesDollarPlaceholders(t *testing.T) {
	title := "t"
	query, _, err := buildUpsert("id-4", domain.ArticlePatch{Title: &title})
	if err != nil {
		t.Fatalf("buildUpsert returned error: %v", err)
	}
	if !strings.Contains(query, "$1") || !strings.Contains(query, "$2") {
		t.Errorf("expected dollar placeholders: %s", query)
	}
	if strings.Contains(query, "?") {
		t.Errorf("unexpected question-mark placeholder: %s", query)
	}
}
