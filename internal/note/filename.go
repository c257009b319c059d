// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidTitle is returned when a title reduces to nothing after
// sanitization, so no usable filename can be derived from it.
var ErrInvalidTitle = errors.New("invalid title: empty after sanitization")

var (
	forbiddenRunes       = `<>"/\|?*`
	strictForbiddenRunes = forbiddenRunes + `@$!^`

	dashRuns    = regexp.MustCompile(`-{2,}`)
	leadingDots = regexp.MustCompile(`^[.^]+`)
)

// Filename deterministically maps a title to a note filename. Colons
// become " -" so subtitles stay readable, filesystem-hostile characters
// are stripped (strict mode also drops @ $ ! ^ and a leading dot run,
// which would hide the file), dash runs collapse to a single dash, and
// the extension is appended. The mapping depends only on the title
// text; distinct titles may collapse to the same name.
func Filename(title, extension string, strict bool) (string, error) {
	name := strings.ReplaceAll(title, ":", " -")

	forbidden := forbiddenRunes
	if strict {
		forbidden = strictForbiddenRunes
	}
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return -1
		}
		return r
	}, name)

	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "- ")
	if strict {
		name = leadingDots.ReplaceAllString(name, "")
		name = strings.Trim(name, "- ")
	}

	if name == "" {
		return "", ErrInvalidTitle
	}
	return name + extension, nil
}
