// Package normalize canonicalizes user-entered keys and search terms.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Key applies NFKC and trims spaces, so full-width digits and hyphens in an
// ISBN compare equal to their ASCII forms.
func Key(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Fold is Key plus lower-casing; used for emails and search terms.
func Fold(s string) string {
	return lower.String(Key(s))
}

// LikeEscape is the ESCAPE character that goes with LikePattern.
const LikeEscape = "!"

var likeEscaper = strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")

// LikePattern wraps a folded search term for a LIKE '%term%' match. % and _
// in the term match literally.
func LikePattern(s string) string {
	return "%" + likeEscaper.Replace(Fold(s)) + "%"
}
