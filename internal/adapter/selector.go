package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls one field out of a job card. ok is false when the markup
// the extractor looks for is absent.
type Extractor func(card *goquery.Selection) (value string, ok bool)

// Chain is an ordered list of extractors tried until one yields a non-blank value.
type Chain []Extractor

// Extract returns the first non-blank value produced by the chain, or "".
func (c Chain) Extract(card *goquery.Selection) string {
	for _, ex := range c {
		if v, ok := ex(card); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// findCards returns the matches of the first selector that matches anything,
// along with that selector.
func findCards(doc *goquery.Document, selectors []string) (*goquery.Selection, string) {
	for _, sel := range selectors {
		if cards := doc.Find(sel); cards.Length() > 0 {
			return cards, sel
		}
	}
	return nil, ""
}

// Text extracts the text of the first element matching selector.
func Text(selector string) Extractor {
	return func(card *goquery.Selection) (string, bool) {
		el := card.Find(selector).First()
		if el.Length() == 0 {
			return "", false
		}
		return el.Text(), true
	}
}

// Attr extracts attribute attr of the first element matching selector.
func Attr(selector, attr string) Extractor {
	return func(card *goquery.Selection) (string, bool) {
		return card.Find(selector).First().Attr(attr)
	}
}

// OwnAttr extracts attribute attr of the card element itself.
func OwnAttr(attr string) Extractor {
	return func(card *goquery.Selection) (string, bool) {
		return card.Attr(attr)
	}
}

// Link extracts the href of the first element matching selector when it is an
// anchor, otherwise the href of the first anchor inside it.
func Link(selector string) Extractor {
	return func(card *goquery.Selection) (string, bool) {
		el := card.Find(selector).First()
		if el.Length() == 0 {
			return "", false
		}
		if !el.Is("a") {
			el = el.Find("a[href]").First()
		}
		return el.Attr("href")
	}
}

// Prefixed prepends prefix to whatever ex extracts, e.g. turning an
// internship ID attribute into a detail path.
func Prefixed(prefix string, ex Extractor) Extractor {
	return func(card *goquery.Selection) (string, bool) {
		v, ok := ex(card)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return prefix + strings.TrimSpace(v), true
	}
}
