// Package feed turns raw feed item fragments into classified results.
// Non-media and filtered items produce no record; absence is the normal
// outcome, not an error.
package feed

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cassiohm/mediafeed/classifier"
	"github.com/cassiohm/mediafeed/schema"
)

// DefaultMaxFileSizeGB caps accepted file sizes. Anything larger is treated
// as a non-media or corrupt entry.
const DefaultMaxFileSizeGB = 100

var (
	itemRe        = regexp.MustCompile(`(?is)<item>(.*?)</item>`)
	linkRe        = regexp.MustCompile(`(?is)<link>\s*(.*?)\s*</link>`)
	enclosureRe   = regexp.MustCompile(`(?is)<enclosure[^>]*url="([^"]+)"`)
	descriptionRe = regexp.MustCompile(`(?is)<description>(?:\s*<!\[CDATA\[)?(.*?)(?:\]\]>\s*)?</description>`)
	filenameRe    = regexp.MustCompile(`(?i)/([^/?#]+\.(?:mkv|mp4|avi|ts))(?:[?#]|$)`)
	sampleRe      = regexp.MustCompile(`(?i)(^|[ ._-])samples?([ ._-]|$)`)
	sizeRe        = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s?(kb|mb|gb|tb)\b`)
	flagIconRe    = regexp.MustCompile(`(?i)flags?/([a-z]{2})\.(?:png|gif|svg|jpg)`)
)

// gigabytes per declared unit
var unitToGB = map[string]float64{
	"kb": 1.0 / (1024 * 1024),
	"mb": 1.0 / 1024,
	"gb": 1,
	"tb": 1024,
}

// SplitItems extracts the <item>...</item> fragments from a feed body.
func SplitItems(body string) []string {
	matches := itemRe.FindAllStringSubmatch(body, -1)
	fragments := make([]string, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, m[1])
	}
	return fragments
}

// DecodeEntities resolves percent-encoding and HTML character entities in
// feed text. Unknown entities pass through unchanged. PathUnescape keeps
// literal plus signs intact; locators are opaque and must not be rewritten
// beyond entity resolution.
func DecodeEntities(s string) string {
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}
	return html.UnescapeString(s)
}

// ParseItem parses one feed item fragment into a Result. The second return
// is false when the item was filtered or carries no playable file.
func ParseItem(fragment string, maxFileSizeGB float64) (*schema.Result, bool) {
	if maxFileSizeGB <= 0 {
		maxFileSizeGB = DefaultMaxFileSizeGB
	}

	locator := extractLocator(fragment)
	if locator == "" {
		return nil, false
	}
	locator = DecodeEntities(locator)

	filename := filenameFromLocator(locator)
	if filename == "" {
		return nil, false
	}
	if sampleRe.MatchString(strings.TrimSuffix(filename, extension(filename))) {
		return nil, false
	}

	// The declared size lives in the description; scanning the whole
	// fragment would let size-like tokens in the locator shadow it.
	sizeText, sizeGB, ok := extractSize(DecodeEntities(descriptionOf(fragment)))
	if !ok || sizeGB > maxFileSizeGB {
		return nil, false
	}

	c := classifier.Classify(filename)
	languages := classifier.MergeLanguages(c.Languages, localeLanguages(fragment))

	return &schema.Result{
		Filename:  filename,
		Locator:   locator,
		Size:      sizeText,
		SizeGB:    sizeGB,
		Quality:   c.Quality,
		Languages: languages,
		Title:     c.Title,
		Year:      c.Year,
		Season:    c.Season,
		Episode:   c.Episode,
	}, true
}

func extractLocator(fragment string) string {
	if m := linkRe.FindStringSubmatch(fragment); len(m) == 2 && m[1] != "" {
		return m[1]
	}
	if m := enclosureRe.FindStringSubmatch(fragment); len(m) == 2 {
		return m[1]
	}
	return ""
}

// filenameFromLocator returns the trailing path segment of the locator when
// it carries a known media extension.
func filenameFromLocator(locator string) string {
	m := filenameRe.FindStringSubmatch(locator)
	if len(m) != 2 {
		return ""
	}
	return m[1]
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}

func descriptionOf(fragment string) string {
	m := descriptionRe.FindStringSubmatch(fragment)
	if len(m) != 2 {
		return ""
	}
	return m[1]
}

// extractSize finds the first declared size and normalizes it to gigabytes.
func extractSize(text string) (raw string, gb float64, ok bool) {
	m := sizeRe.FindStringSubmatch(text)
	if len(m) != 3 {
		return "", 0, false
	}
	value, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return "", 0, false
	}
	return m[0], value * unitToGB[strings.ToLower(m[2])], true
}

// localeLanguages decodes flag-icon references embedded in the item's
// description into language names.
func localeLanguages(fragment string) []string {
	description := descriptionOf(fragment)
	if description == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html.UnescapeString(description)))
	if err != nil {
		return nil
	}

	var languages []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists {
			return
		}
		if m := flagIconRe.FindStringSubmatch(src); len(m) == 2 {
			if lang := classifier.LanguageForCountry(strings.ToLower(m[1])); lang != "" {
				languages = append(languages, lang)
			}
		}
	})
	return languages
}
