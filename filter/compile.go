package filter

import (
	"fmt"
	"strings"
	"time"
)

// Compile translates a filter expression into the backend's filter-query
// syntax: atoms of the form "tags = x", "tags != x", "date > N", "date < N"
// joined by literal " AND " / " OR ". now anchors relative durations and is
// injected so compilation stays deterministic.
//
// An empty or all-whitespace input compiles to "" with a nil error: no
// filter. A rejected input returns a non-empty error explaining why; callers
// that only want the silent behavior should use Process instead.
func Compile(input string, now time.Time) (string, error) {
	tokens, err := Parse(input)
	if err != nil {
		return "", err
	}
	return CompileTokens(tokens, now)
}

// Process is the silent boundary around Compile: a filter that does not
// parse, or fails validation, yields "" so the caller leaves any previous
// filter untouched. Use Compile directly when the failure reason matters.
func Process(input string, now time.Time) string {
	out, err := Compile(input, now)
	if err != nil {
		return ""
	}
	return out
}

// CompileError reports a term that lexed and parsed but cannot be compiled,
// such as a date that does not exist on the calendar. The whole expression
// is rejected; no partial filter is ever produced.
type CompileError struct {
	Term string // source text of the offending term
	Pos  int    // byte offset of the term in the input
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("term %q at position %d: %v", e.Term, e.Pos, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// CompileTokens walks a token stream left to right and emits the backend
// filter string. The only state carried between tokens is the pending
// comparator: set by a comparator token, consumed by the next date or
// duration. A second comparator before consumption overwrites the first,
// and one still pending at end of input is discarded.
func CompileTokens(tokens []Token, now time.Time) (string, error) {
	var out strings.Builder
	pending := CompareNone

loop:
	for _, tok := range tokens {
		switch tok.Type {
		case TokenComparator:
			pending = tok.Compare

		case TokenDate:
			start, end, err := dateRange(tok)
			if err != nil {
				return "", &CompileError{Term: tok.Text, Pos: tok.Pos, Err: err}
			}
			switch pending {
			case CompareGreater:
				fmt.Fprintf(&out, "date > %d", start.Unix())
			case CompareLess:
				fmt.Fprintf(&out, "date < %d", end.Unix())
			default:
				fmt.Fprintf(&out, "date > %d AND date < %d", start.Unix(), end.Unix())
			}
			pending = CompareNone

		case TokenDuration:
			threshold := now.Add(-durationOf(tok)).UTC()
			switch pending {
			case CompareLess:
				fmt.Fprintf(&out, "date < %d", threshold.Unix())
			default:
				// no comparator means "since": a lower bound only
				fmt.Fprintf(&out, "date > %d", threshold.Unix())
			}
			pending = CompareNone

		case TokenTag:
			out.WriteString("tags = ")
			out.WriteString(tok.Name)

		case TokenNotTag:
			out.WriteString("tags != ")
			out.WriteString(tok.Name)

		case TokenOperator:
			if tok.Op == OpAnd {
				out.WriteString(" AND ")
			} else {
				out.WriteString(" OR ")
			}

		case TokenEOF:
			break loop

		default:
			// grammar and compiler share one token set; a new token type
			// must be handled here before it can be emitted by Parse
			panic(fmt.Sprintf("filter: unhandled token type %v", tok.Type))
		}
	}

	return out.String(), nil
}
