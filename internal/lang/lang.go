// Package lang holds the two language concerns of the service: guessing the
// language of a post body and picking the response locale for a request.
package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Guess returns the ISO 639-1 code of the text, or "" when detection is
// unreliable or the code does not fit the posts.language column.
func Guess(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}

	code := info.Lang.Iso6391()
	if code == "" || len(code) > 5 {
		return ""
	}

	return code
}

// Matcher picks the best supported locale for an Accept-Language header.
type Matcher struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewMatcher builds a matcher; the first language is the fallback.
func NewMatcher(languages []string) *Matcher {
	var tags []language.Tag
	for _, l := range languages {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
	}

	return &Matcher{supported: tags, matcher: language.NewMatcher(tags)}
}

// Match returns the base language ("en", "ru", ...) to answer in.
func (m *Matcher) Match(acceptLanguage string) string {
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return baseOf(m.supported[0])
	}

	_, index, _ := m.matcher.Match(desired...)
	return baseOf(m.supported[index])
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
