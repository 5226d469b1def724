package prefill

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sof1ane/aipply/internal/profile"
)

// Extract pulls wizard defaults out of a public profile page. Public pages
// expose at most a name, a headline, and a photo through Open Graph metadata;
// anything missing is simply left unset.
func Extract(html string) (*profile.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Message: "failed to parse HTML", Cause: err}
	}

	prof := profile.New()

	if title, ok := metaContent(doc, `meta[property="og:title"]`); ok {
		prof.FullName = cleanOGTitle(title)
	}
	if prof.FullName == "" {
		prof.FullName = cleanOGTitle(doc.Find("title").First().Text())
	}
	if desc, ok := metaContent(doc, `meta[property="og:description"]`); ok {
		prof.Title = headlineFromDescription(desc)
	}
	if image, ok := metaContent(doc, `meta[property="og:image"]`); ok {
		prof.PhotoURL = image
	}

	// Unrendered JavaScript shells parse fine but carry none of the metadata;
	// report that as a failure so callers do not claim a successful prefill.
	if prof.FullName == "" && prof.Title == "" && prof.PhotoURL == "" {
		return nil, &Error{Message: "no profile metadata found in page"}
	}

	return prof, nil
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	content, exists := doc.Find(selector).First().Attr("content")
	content = strings.TrimSpace(content)
	return content, exists && content != ""
}

// cleanOGTitle strips LinkedIn's title decorations, e.g.
// "Jane Doe - Engineer | LinkedIn" or "Jane Doe | LinkedIn".
func cleanOGTitle(title string) string {
	title = strings.TrimSpace(title)
	if idx := strings.Index(title, "|"); idx >= 0 {
		title = title[:idx]
	}
	if idx := strings.Index(title, " - "); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}

// headlineFromDescription keeps only the first sentence-ish chunk of the
// og:description, which holds the headline on public profile pages.
func headlineFromDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	for _, sep := range []string{" · ", " | ", ". "} {
		if idx := strings.Index(desc, sep); idx >= 0 {
			desc = desc[:idx]
			break
		}
	}
	return strings.TrimSpace(desc)
}
