package domain

import "testing"

func TestIdentity(t *testing.T) {
	t.Parallel()

	got := Identity("https://example.com/news/story.html")
	want := "https:__example_com_news_story_html"
	if got != want {
		t.Fatalf("unexpected identity: %s", got)
	}
}

func TestIdentityDeterministic(t *testing.T) {
	t.Parallel()

	url := "https://example.com/a/b.html"
	if Identity(url) != Identity(url) {
		t.Fatalf("identity is not deterministic")
	}
}
