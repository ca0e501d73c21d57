// Package assets embeds the default word lists so the solver runs without
// any files configured.
//
//   - answers.txt: common words the solution is drawn from.
//   - allowed.txt: extra guessable words; together with the answers they
//     form the auxiliary pool searched by hard breaker turns.
//
// Lines starting with '#' are comments.
package assets

import (
	"embed"
	"io"
)

const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Open returns a reader over one of the embedded lists.
func Open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}
