// internal/words/words.go
//
// Corpus supplier for the solver.
//
// Responsibilities:
//   - Load the answer list and the auxiliary guess list from files named in
//     Options, or fall back to the embedded defaults in package assets.
//   - Normalise lists: trim, drop anything that is not all a–z, keep only
//     words of the configured length, drop duplicates (first one wins).
//   - Optionally drop words sharing an English stem with an earlier word.
//   - Supply per-game views: shuffled copies, samples and random solutions.
//
// Loading rules:
//  1. AnswersFile and AuxFile both set: answers from the first, aux from the
//     second.
//  2. Only AuxFile set: that file serves as both lists.
//  3. Only AnswersFile set: the answers double as the aux list.
//  4. Neither set: embedded answers.txt and allowed.txt.
//
// The aux list always contains every answer.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kljensen/snowball/english"
	"lukechampine.com/frand"

	"github.com/evanmacbride/beat-wordle/assets"
	"github.com/evanmacbride/beat-wordle/internal/game"
)

// ErrEmptyCorpus is returned when no usable answers remain after filtering.
var ErrEmptyCorpus = errors.New("words: answers list is empty")

// Options selects and shapes the word lists.
type Options struct {
	Length      int    // word length; game.DefaultLength when zero
	AnswersFile string // path to the answers list
	AuxFile     string // path to the auxiliary guess list
	DedupeStems bool   // drop answers sharing an English stem with an earlier answer
	Sample      int    // keep a random sample of this many answers; 0 keeps all
}

// Corpus holds the loaded lists. It is read-only after Load and safe for
// concurrent use; the per-game views return fresh slices.
type Corpus struct {
	length    int
	answers   []game.Word
	aux       []game.Word
	answerSet map[game.Word]struct{}
	auxSet    map[game.Word]struct{}
}

// Load builds a corpus according to opts.
func Load(opts Options) (*Corpus, error) {
	if opts.Length <= 0 {
		opts.Length = game.DefaultLength
	}

	var ans, aux []game.Word
	var err error
	switch {
	case opts.AnswersFile != "" && opts.AuxFile != "":
		if ans, err = readFile(opts.AnswersFile, opts.Length); err != nil {
			return nil, err
		}
		if aux, err = readFile(opts.AuxFile, opts.Length); err != nil {
			return nil, err
		}
	case opts.AuxFile != "":
		if aux, err = readFile(opts.AuxFile, opts.Length); err != nil {
			return nil, err
		}
		ans = aux
	case opts.AnswersFile != "":
		if ans, err = readFile(opts.AnswersFile, opts.Length); err != nil {
			return nil, err
		}
		aux = ans
	default:
		if ans, err = readEmbedded(assets.AnswersFile, opts.Length); err != nil {
			return nil, err
		}
		if aux, err = readEmbedded(assets.AllowedFile, opts.Length); err != nil {
			return nil, err
		}
	}

	if opts.DedupeStems {
		ans = DedupeStems(ans)
	}
	if opts.Sample > 0 && opts.Sample < len(ans) {
		ans = sample(ans, opts.Sample)
	}
	return New(ans, aux, opts.Length)
}

// New builds a corpus from in-memory lists. Words are normalised the same
// way files are.
func New(answers, aux []game.Word, length int) (*Corpus, error) {
	if length <= 0 {
		length = game.DefaultLength
	}
	c := &Corpus{length: length}
	c.answers = normalizeWords(answers, length)
	if len(c.answers) == 0 {
		return nil, ErrEmptyCorpus
	}
	c.answerSet = toSet(c.answers)

	c.aux = normalizeWords(append(append([]game.Word{}, aux...), c.answers...), length)
	c.auxSet = toSet(c.aux)
	return c, nil
}

func readFile(path string, n int) ([]game.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	ws, err := Read(f, n)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return ws, nil
}

func readEmbedded(name string, n int) ([]game.Word, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("words: embedded %s: %w", name, err)
	}
	defer f.Close()
	return Read(f, n)
}

// Read parses one word per line and keeps the valid words of length n.
// Blank lines and '#' comments are skipped.
func Read(r io.Reader, n int) ([]game.Word, error) {
	var raw []game.Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, game.Word(strings.ToLower(line)))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalizeWords(raw, n), nil
}

// normalizeWords keeps the first occurrence of every valid word of length n.
func normalizeWords(ws []game.Word, n int) []game.Word {
	seen := make(map[game.Word]struct{}, len(ws))
	out := make([]game.Word, 0, len(ws))
	for _, w := range ws {
		if w.Validate(n) != nil {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// DedupeStems keeps the first word of each English stem, so plurals and
// past tenses of an earlier word are dropped.
func DedupeStems(ws []game.Word) []game.Word {
	seen := make(map[string]struct{}, len(ws))
	out := make([]game.Word, 0, len(ws))
	for _, w := range ws {
		stem := english.Stem(string(w), true)
		if _, dup := seen[stem]; dup {
			continue
		}
		seen[stem] = struct{}{}
		out = append(out, w)
	}
	return out
}

func toSet(list []game.Word) map[game.Word]struct{} {
	m := make(map[game.Word]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

func sample(ws []game.Word, n int) []game.Word {
	out := make([]game.Word, n)
	for i, j := range frand.Perm(len(ws))[:n] {
		out[i] = ws[j]
	}
	return out
}

func shuffled(ws []game.Word) []game.Word {
	out := append([]game.Word(nil), ws...)
	frand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Length is the word length of every word in the corpus.
func (c *Corpus) Length() int { return c.length }

// Answers returns a copy of the answer list in load order.
func (c *Corpus) Answers() []game.Word { return append([]game.Word(nil), c.answers...) }

// Aux returns a copy of the auxiliary list in load order.
func (c *Corpus) Aux() []game.Word { return append([]game.Word(nil), c.aux...) }

// Shuffled returns the answers in a fresh random order, one per game.
func (c *Corpus) Shuffled() []game.Word { return shuffled(c.answers) }

// ShuffledAux returns the aux list in a fresh random order.
func (c *Corpus) ShuffledAux() []game.Word { return shuffled(c.aux) }

// Sample returns n distinct random answers, or all of them shuffled when n
// is not smaller than the list.
func (c *Corpus) Sample(n int) []game.Word {
	if n <= 0 || n >= len(c.answers) {
		return c.Shuffled()
	}
	return sample(c.answers, n)
}

// RandomAnswer picks a uniformly random answer.
func (c *Corpus) RandomAnswer() game.Word {
	return c.answers[frand.Intn(len(c.answers))]
}

// IsAnswer reports whether w is in the answer list.
func (c *Corpus) IsAnswer(w game.Word) bool {
	_, ok := c.answerSet[w]
	return ok
}

// IsAllowed reports whether w is a valid guess (answers ∪ aux).
func (c *Corpus) IsAllowed(w game.Word) bool {
	_, ok := c.auxSet[w]
	return ok
}

// Stats returns the list sizes: (answers, allowed).
func (c *Corpus) Stats() (answers int, allowed int) {
	return len(c.answers), len(c.aux)
}
