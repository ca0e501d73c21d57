package solver

import (
	"github.com/evanmacbride/beat-wordle/internal/game"
)

var testCorpus = words(
	"crane", "slate", "crate", "crave", "grape", "trace", "brave", "shine", "plane", "flame",
	"blame", "stare", "store", "score", "shore", "chore", "spore", "snore", "stone", "phone",
	"prone", "drone", "grace", "place", "space", "brace", "crest", "chest", "guest", "quest",
	"blast", "beast", "feast", "least", "yeast", "plant", "grant", "giant", "chant", "slant",
	"eerie", "there", "speed", "erase", "geese", "abbey", "kebab", "mamma", "llama", "hello",
	"tiger", "ocean", "lemon", "melon", "mango", "robot", "pilot", "sugar", "water", "paper",
)

func words(ws ...string) []game.Word {
	out := make([]game.Word, len(ws))
	for i, w := range ws {
		out[i] = game.Word(w)
	}
	return out
}

func set(ws ...string) *Set { return NewSet(words(ws...)) }

func feedback(s string) game.Feedback {
	fb, err := game.ParseFeedback(s, len(s))
	if err != nil {
		panic(err)
	}
	return fb
}
