// Package fuzztests holds fuzz harnesses for the front half of the
// formatter (source -> lexer -> trivia -> parser). They guard against
// panics, hangs and lost bytes on arbitrary input.
//
// Seeds come from the snapshot files under internal/format/testdata and
// from a fixed list of Verus fragments.
package fuzztests
