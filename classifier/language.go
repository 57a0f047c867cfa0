package classifier

import "regexp"

// languageRule maps a filename pattern set to a human-readable language
// name. Unlike quality rules, a filename may match several languages, so
// every rule is tested and matches are unioned.
type languageRule struct {
	language string
	pattern  *regexp.Regexp
}

var languageRules = []languageRule{
	{"English", regexp.MustCompile(`(?i)\b(english|eng)\b`)},
	{"French", regexp.MustCompile(`(?i)\b(french|fran[cç]ais|vff?|vfq|vf2|vfi|vostfr|truefrench|subfrench)\b`)},
	{"German", regexp.MustCompile(`(?i)\b(german|deutsch|ger)\b`)},
	{"Spanish", regexp.MustCompile(`(?i)\b(spanish|castellano|espanol|español|spa)\b`)},
	{"Italian", regexp.MustCompile(`(?i)\b(italian|italiano|ita)\b`)},
	{"Multi", regexp.MustCompile(`(?i)\bmulti\b`)},
	{"Nordic", regexp.MustCompile(`(?i)\b(nordic|norwegian|swedish|danish|finnish)\b`)},
}

// releaseTypeRe matches generic release tags of standard scene encodes.
// An untagged release matching one of these is assumed English.
var releaseTypeRe = regexp.MustCompile(`(?i)\b(blu-?ray|bd-?rip|br-?rip|web-?dl|web-?rip|dvd-?rip)\b`)

// flagLanguages decodes locale markers attached to a feed item (country
// codes from flag-icon references) into language names.
var flagLanguages = map[string]string{
	"en": "English",
	"us": "English",
	"gb": "English",
	"uk": "English",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"se": "Nordic",
	"no": "Nordic",
	"dk": "Nordic",
	"fi": "Nordic",
}

// InferLanguages returns the spoken languages detected in a filename, in
// rule order. When nothing is tagged but the name looks like a standard
// release, it defaults to English.
func InferLanguages(filename string) []string {
	var languages []string
	for _, rule := range languageRules {
		if rule.pattern.MatchString(filename) {
			languages = append(languages, rule.language)
		}
	}
	if len(languages) == 0 && releaseTypeRe.MatchString(filename) {
		languages = append(languages, "English")
	}
	return languages
}

// LanguageForCountry resolves a two-letter country code into a language
// name. The empty string means the code is unknown.
func LanguageForCountry(code string) string {
	return flagLanguages[code]
}

// MergeLanguages unions language lists, keeping first-seen order and
// collapsing duplicates.
func MergeLanguages(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, lang := range list {
			if lang == "" || seen[lang] {
				continue
			}
			seen[lang] = true
			merged = append(merged, lang)
		}
	}
	return merged
}
