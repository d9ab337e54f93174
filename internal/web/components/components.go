package components

//go:generate go run postpage/cmd/templgen -base ../../.. -path .

import (
	"strings"

	"github.com/a-h/templ"
	"postpage/internal/markdown"
)

const datastarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

type LayoutProps struct {
	Title       string
	Description string
	// CanonicalURL is omitted from the head when empty.
	CanonicalURL string
}

func (p LayoutProps) title() string {
	if title := strings.TrimSpace(p.Title); title != "" {
		return title
	}
	return "Blog"
}

func (p LayoutProps) description() string {
	return strings.TrimSpace(p.Description)
}

func (p LayoutProps) canonicalURL() string {
	return strings.TrimSpace(p.CanonicalURL)
}

func chromaStyle() templ.Component {
	return templ.Raw("<style>" + string(markdown.ChromaCSS()) + "</style>")
}

func postAction(url string) string {
	return "@post('" + url + "')"
}

func postMeta(createdAt string, readingTime string) string {
	meta := make([]string, 0, 2)
	if createdAt != "" {
		meta = append(meta, createdAt)
	}
	if readingTime != "" {
		meta = append(meta, readingTime)
	}
	return strings.Join(meta, " · ")
}

func toggleIcon(published bool) templ.Component {
	if published {
		return lockIcon()
	}
	return badgeIcon()
}
