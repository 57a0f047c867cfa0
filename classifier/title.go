package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	extensionRe = regexp.MustCompile(`(?i)\.(mkv|mp4|avi|ts)$`)
	// Everything from the first resolution or source tag onward is encoding
	// metadata, not title.
	metadataTailRe = regexp.MustCompile(`(?i)[ ._-](2160p|1080[pi]|720p|480[pi]|4k|uhd|fhd|blu-?ray|bd-?rip|br-?rip|web-?dl|web-?rip|hdtv|hd-?rip|dvd-?rip|x26[45]|h[ ._-]?26[45]|hevc|xvid|divx|aac|ac-?3|dts|multi|vostfr|truefrench)([ ._-].*)?$`)
	yearRe          = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bs(\d{1,2})[ ._-]?e(\d{1,2})\b`)
	bracketRe       = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)

	separatorReplacer = strings.NewReplacer(".", " ", "-", " ", "_", " ")
)

// ParseSeasonEpisode extracts a S##E## marker from a filename. ok is false
// when no marker is present.
func ParseSeasonEpisode(filename string) (season, episode int, ok bool) {
	matches := seasonEpisodeRe.FindStringSubmatch(filename)
	if len(matches) != 3 {
		return 0, 0, false
	}
	season, _ = strconv.Atoi(matches[1])
	episode, _ = strconv.Atoi(matches[2])
	if season == 0 || episode == 0 {
		return 0, 0, false
	}
	return season, episode, true
}

// CleanTitle derives a best-effort human-readable title and a release year
// from a filename. Malformed names degrade to a noisier title rather than
// failing.
func CleanTitle(filename string) (title string, year int) {
	title = extensionRe.ReplaceAllString(filename, "")
	title = metadataTailRe.ReplaceAllString(title, "")
	title = separatorReplacer.Replace(title)

	// Replace at the match indices; the same digits may appear embedded in
	// an earlier token the word boundary skipped.
	if loc := yearRe.FindStringIndex(title); loc != nil {
		year, _ = strconv.Atoi(title[loc[0]:loc[1]])
		title = title[:loc[0]] + " " + title[loc[1]:]
	}
	title = seasonEpisodeRe.ReplaceAllString(title, " ")
	title = bracketRe.ReplaceAllString(title, " ")
	title = whitespaceRe.ReplaceAllString(title, " ")

	return strings.TrimSpace(title), year
}
