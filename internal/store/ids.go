package store

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSize     = 12
)

// newID returns a prefixed random id, e.g. "job_x1y2z3a4b5c6". Ids used to be
// derived from collection length, which collides as soon as records are ever
// removed; the store owns generation now.
func newID(prefix string) string {
	return prefix + "_" + gonanoid.MustGenerate(idAlphabet, idSize)
}
