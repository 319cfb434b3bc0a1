package hashtag

import (
	"strings"
	"unicode"
)

// NameMaxLen is the conventional max length (in runes) of a tag name.
const NameMaxLen = 20

// CleanToken strips all whitespace and separator characters from `s`
// so that it can be used as a category or name.
func CleanToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || string(r) == Sep {
			return -1
		}
		return r
	}, s)
}

// NameFromTitle derives a tag name from a human title: CleanToken, then truncated to `maxLen` runes
// (NameMaxLen when maxLen <= 0).
// Encode does not apply this; callers normalize before encoding.
func NameFromTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = NameMaxLen
	}
	name := []rune(CleanToken(title))
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return string(name)
}

// New builds a Tag from raw form input, normalizing category & title the conventional way.
func New(category, title string, start, end string, nameMaxLen int) (Tag, error) {
	tag := Tag{
		Category: CleanToken(category),
		Name:     NameFromTitle(title, nameMaxLen),
	}
	var err error
	if tag.Start, err = ParseDate(start); err != nil {
		return Tag{}, err
	}
	if tag.End, err = ParseDate(end); err != nil {
		return Tag{}, err
	}
	return tag, nil
}
