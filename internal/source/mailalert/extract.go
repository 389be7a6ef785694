package mailalert

import (
	"html"
	"io"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source/util"
)

var (
	reHref = regexp.MustCompile(`(?is)<a[^>]+href=["']([^"'#]+)["'][^>]*>(.*?)</a>`)
	reTags = regexp.MustCompile(`(?is)<[^>]+>`)
)

// decodeBody turns a raw RFC822 message into scannable text. Digest
// mails are quoted-printable HTML more often than not; anything the
// decoder chokes on falls back to the raw bytes.
func decodeBody(raw []byte) string {
	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		return string(raw)
	}

	var r io.Reader = msg.Body
	if strings.EqualFold(msg.Header.Get("Content-Transfer-Encoding"), "quoted-printable") {
		r = quotedprintable.NewReader(msg.Body)
	}

	b, err := io.ReadAll(r)
	if err != nil && len(b) == 0 {
		return string(raw)
	}
	return string(b)
}

// extractListings pulls job links out of a digest body. The anchor
// text is the only title we get; a "Title · Company · Location" anchor
// (LinkedIn's digest format) is split into its parts. Anchors that do
// not look like job links, or that miss a title, are dropped.
func extractListings(body, keywords string) []domain.Listing {
	var out []domain.Listing
	for _, m := range reHref.FindAllStringSubmatch(body, -1) {
		href := strings.TrimSpace(html.UnescapeString(m[1]))
		text := util.CleanText(html.UnescapeString(reTags.ReplaceAllString(m[2], " ")))

		if href == "" || text == "" || !looksLikeJobLink(href) {
			continue
		}
		if !keywordMatches(text, keywords) {
			continue
		}

		title, company, location := splitAnchor(text)
		if title == "" {
			continue
		}
		out = append(out, domain.Listing{
			Title:    title,
			Company:  company,
			Location: location,
			URL:      href,
		})
	}
	return out
}

func looksLikeJobLink(href string) bool {
	low := strings.ToLower(href)
	if strings.Contains(low, "unsubscribe") || strings.Contains(low, "preferences") ||
		strings.Contains(low, "mailto:") {
		return false
	}
	return strings.Contains(low, "/jobs/") ||
		strings.Contains(low, "currentjobid=") ||
		strings.Contains(low, "/job/") ||
		strings.Contains(low, "vacature") ||
		strings.Contains(low, "offre")
}

func splitAnchor(text string) (title, company, location string) {
	for _, sep := range []string{" · ", " | ", " - "} {
		if strings.Contains(text, sep) {
			parts := strings.SplitN(text, sep, 3)
			for i := range parts {
				parts[i] = util.CleanText(parts[i])
			}
			switch len(parts) {
			case 2:
				return parts[0], parts[1], ""
			case 3:
				return parts[0], parts[1], parts[2]
			}
		}
	}
	return text, "", ""
}
