package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxMarkupPasses bounds the fixed-point loop in StripMarkup.
const maxMarkupPasses = 8

// markupFallback removes every character that can start markup or an entity.
var markupFallback = strings.NewReplacer("<", "", ">", "", "&", "")

// stripMarkupOnce is a single cleaning pass. Entities are unescaped last, so a pass may
// reveal new markup that the next pass removes.
var stripMarkupOnce = Chain{
	norm.NFC.String,
	RemoveNullBytes,
	RemoveControlSequences,
	StripComments,
	StripScriptTags,
	StripTags,
	stripDanglingTag,
	html.UnescapeString,
}.Clean

// StripMarkup removes executable content and markup from s while keeping its plain text.
//
//	StripMarkup(`<script>alert(1)</script>Paris`) // "Paris"
//	StripMarkup(`<b>Rome</b> &amp; Milan`)         // "Rome & Milan"
//
// The result is a fixed point: StripMarkup(StripMarkup(s)) == StripMarkup(s).
func StripMarkup(s string) string {
	for range maxMarkupPasses {
		next := stripMarkupOnce(s)
		if next == s {
			return s
		}
		s = next
	}
	// Input keeps producing markup after unescaping; drop the markup characters entirely.
	s = markupFallback.Replace(stripMarkupOnce(s))
	return norm.NFC.String(RemoveControlSequences(RemoveNullBytes(s)))
}

// StripScriptTags removes script-like elements together with their content.
func StripScriptTags(s string) string {
	return blockTagRegex.ReplaceAllString(s, "")
}

// StripComments removes HTML comments, including conditional comments.
func StripComments(s string) string {
	return htmlCommentRegex.ReplaceAllString(s, "")
}

// StripTags removes all remaining tags but keeps the text between them.
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// stripDanglingTag removes an unterminated tag at the end of input, e.g. `<img src=x onerror=...`.
func stripDanglingTag(s string) string {
	return danglingTagRegex.ReplaceAllString(s, "")
}

// RemoveNullBytes removes null bytes that could cause issues in C-based systems.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveControlSequences removes ANSI escape sequences and other control characters.
func RemoveControlSequences(s string) string {
	result := ansiEscapeRegex.ReplaceAllString(s, "")

	// Remove other control characters except common ones
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, result)
}
