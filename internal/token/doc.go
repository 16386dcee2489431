// Package token defines lexical token kinds and trivia.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Concatenating Leading, Text and Trailing of every token in order,
//     EOF included, reproduces the input byte for byte.
//   - Verification words (requires, ensures, forall, spec, proof, ...) are
//     Ident tokens; the parser decides from context whether they are keywords.
//   - Verification operators (==>, <==, <==>, ===, !==, &&&, |||, =~=, =~~=) are single
//     tokens produced by greedy matching.
package token
