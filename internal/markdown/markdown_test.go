package markdown

import (
	"strings"
	"testing"
)

func TestToHTML_ExternalLinksOpenInNewTab(t *testing.T) {
	html := string(ToHTML("[docs](https://docs.example.com/start)", Options{
		RootURL: "https://blog.example.com",
	}))

	if !strings.Contains(html, `href="https://docs.example.com/start"`) {
		t.Fatalf("expected external href, got %s", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Fatalf("expected target blank, got %s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("expected external rel attrs, got %s", html)
	}
}

func TestToHTML_NormalizesSameDomainAbsoluteLinks(t *testing.T) {
	html := string(ToHTML("[same](https://blog.example.com/posts/a?x=1#k)", Options{
		RootURL: "https://blog.example.com",
	}))

	if !strings.Contains(html, `href="/posts/a?x=1#k"`) {
		t.Fatalf("expected normalized same-domain href, got %s", html)
	}
	if strings.Contains(html, `target="_blank"`) {
		t.Fatalf("did not expect target blank for same-domain links, got %s", html)
	}
}

func TestToHTML_RelativeLinksStayInTab(t *testing.T) {
	html := string(ToHTML("[next](/posts/next)", Options{}))

	if strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Fatalf("did not expect rel attrs for relative links, got %s", html)
	}
}

func TestToHTML_HighlightsCodeBlocks(t *testing.T) {
	source := "```go\nfmt.Println(\"hello\")\n```"
	html := string(ToHTML(source, Options{}))

	if !strings.Contains(html, `class="chroma"`) {
		t.Fatalf("expected chroma class for fenced code block, got %s", html)
	}
	if !strings.Contains(html, "Println") {
		t.Fatalf("expected code content in rendered block, got %s", html)
	}
}

func TestToHTML_SkipsRawHTML(t *testing.T) {
	html := string(ToHTML("hello <script>alert(1)</script>", Options{}))

	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be skipped, got %s", html)
	}
}

func TestToHTML_Empty(t *testing.T) {
	if html := ToHTML("   ", Options{}); html != "" {
		t.Fatalf("expected empty output, got %q", html)
	}
}

func TestExcerpt_StripsMarkdown(t *testing.T) {
	got := Excerpt("# Title\n\nSome **bold** and [a link](https://example.com).", 300)
	if got != "Title Some bold and a link." {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestExcerpt_TruncatesOnWordBoundary(t *testing.T) {
	got := Excerpt("alpha beta gamma delta", 12)
	if got != "alpha beta..." {
		t.Fatalf("expected graceful word truncation, got %q", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	if got := ReadingMinutes(""); got != 0 {
		t.Fatalf("expected 0 minutes for empty body, got %d", got)
	}
	if got := ReadingMinutes("just a few words"); got != 1 {
		t.Fatalf("expected 1 minute, got %d", got)
	}
	if got := ReadingMinutes(strings.Repeat("word ", 401)); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
}
