package handler

import "strings"

// UnescapeNewlines turns literal backslash-n sequences into real line breaks.
// Upstream backtest output arrives with escaped newlines that must render as
// breaks in the chat transcript. Already-unescaped text passes through
// unchanged, so applying it twice is safe.
func UnescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
