package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// The filter mini-language, informally:
//
//	expression     := (term operator)* term EOI
//	term           := comparator? (date | duration) | tag | not_tag
//	comparator     := ">" | "<"
//	tag            := identifier
//	not_tag        := "!" identifier
//	date           := YYYY "-" MM "-" DD | YYYY "-" MM | YYYY
//	duration       := integer ("h" | "d" | "w" | "m" | "y")
//	operator       := "AND" | "OR"
//
// There are no parentheses, no quoting, and no operator precedence: the
// compiler consumes the token stream strictly left to right. Tags containing
// whitespace cannot be expressed.

// Tokenize performs the lexical scan of a filter expression. It returns the
// token stream terminated by a TokenEOF token, or an error describing the
// first byte that does not belong to the language.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '>':
			tokens = append(tokens, Token{Type: TokenComparator, Text: ">", Pos: i, Compare: CompareGreater})
			i++

		case c == '<':
			tokens = append(tokens, Token{Type: TokenComparator, Text: "<", Pos: i, Compare: CompareLess})
			i++

		case c == '!':
			name, width := scanIdent(input[i+1:])
			if name == "" {
				return nil, fmt.Errorf("position %d: expected tag name after '!'", i)
			}
			tokens = append(tokens, Token{Type: TokenNotTag, Text: input[i : i+1+width], Pos: i, Name: name})
			i += 1 + width

		case c >= '0' && c <= '9':
			tok, width, err := scanNumeric(input[i:], i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += width

		case isIdentStart(c):
			word, width := scanIdent(input[i:])
			switch word {
			case "AND":
				tokens = append(tokens, Token{Type: TokenOperator, Text: word, Pos: i, Op: OpAnd})
			case "OR":
				tokens = append(tokens, Token{Type: TokenOperator, Text: word, Pos: i, Op: OpOr})
			default:
				tokens = append(tokens, Token{Type: TokenTag, Text: word, Pos: i, Name: word})
			}
			i += width

		default:
			return nil, fmt.Errorf("position %d: unexpected character %q", i, c)
		}
	}
	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(input)})
	return tokens, nil
}

// Parse tokenizes a filter expression and validates it against the grammar:
// terms separated by AND/OR, where a comparator may only prefix a date or
// duration term. On success the full token stream is returned in source
// order; on any mismatch the input is rejected as a whole.
func Parse(input string) ([]Token, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil // empty expression = no filter
	}

	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	i := 0
	for {
		// one term
		switch tokens[i].Type {
		case TokenComparator:
			next := tokens[i+1]
			if next.Type != TokenDate && next.Type != TokenDuration {
				return nil, fmt.Errorf("position %d: comparator %q must be followed by a date or duration", tokens[i].Pos, tokens[i].Text)
			}
			i += 2
		case TokenDate, TokenDuration, TokenTag, TokenNotTag:
			i++
		default:
			return nil, fmt.Errorf("position %d: expected a term, found %s", tokens[i].Pos, tokens[i].Type)
		}

		if tokens[i].Type == TokenEOF {
			return tokens, nil
		}
		if tokens[i].Type != TokenOperator {
			return nil, fmt.Errorf("position %d: expected AND or OR, found %s", tokens[i].Pos, tokens[i].Type)
		}
		i++
	}
}

// scanNumeric lexes a token starting with a digit: a date literal at one of
// the three granularities, or a duration with a unit suffix. pos is the
// offset of the token in the whole input, used for error reporting.
func scanNumeric(s string, pos int) (Token, int, error) {
	digits := countDigits(s)

	// Date literals: the year is exactly four digits and is followed either
	// by "-MM" or by a token boundary.
	if digits == 4 && (len(s) == 4 || isBoundary(s[4]) || s[4] == '-') {
		return scanDate(s, pos)
	}

	// Duration: digits followed by a single unit letter at a token boundary.
	if digits < len(s) && isUnitLetter(s[digits]) && (len(s) == digits+1 || isBoundary(s[digits+1])) {
		amount, err := strconv.ParseInt(s[:digits], 10, 64)
		if err != nil {
			return Token{}, 0, fmt.Errorf("position %d: invalid duration amount %q", pos, s[:digits])
		}
		return Token{
			Type:   TokenDuration,
			Text:   s[:digits+1],
			Pos:    pos,
			Amount: amount,
			Unit:   unitFor(s[digits]),
		}, digits + 1, nil
	}

	return Token{}, 0, fmt.Errorf("position %d: %q is neither a date nor a duration", pos, s[:digits])
}

// scanDate lexes YYYY, YYYY-MM, or YYYY-MM-DD. Only the shape is checked
// here; whether the digits form a real calendar date is the compiler's
// business.
func scanDate(s string, pos int) (Token, int, error) {
	tok := Token{Type: TokenDate, Pos: pos, Gran: GranYear}
	tok.Year = atoi(s[:4])
	width := 4

	if len(s) > 4 && s[4] == '-' {
		if len(s) < 7 || countDigits(s[5:]) < 2 {
			return Token{}, 0, fmt.Errorf("position %d: expected two-digit month after %q", pos, s[:5])
		}
		if countDigits(s[5:]) > 2 {
			return Token{}, 0, fmt.Errorf("position %d: month must be two digits in %q", pos, s[:5+countDigits(s[5:])])
		}
		tok.Month = atoi(s[5:7])
		tok.Gran = GranYearMonth
		width = 7

		if len(s) > 7 && s[7] == '-' {
			if len(s) < 10 || countDigits(s[8:]) < 2 {
				return Token{}, 0, fmt.Errorf("position %d: expected two-digit day after %q", pos, s[:8])
			}
			if countDigits(s[8:]) > 2 {
				return Token{}, 0, fmt.Errorf("position %d: day must be two digits in %q", pos, s[:8+countDigits(s[8:])])
			}
			tok.Day = atoi(s[8:10])
			tok.Gran = GranYearMonthDay
			width = 10
		}
	}

	if len(s) > width && !isBoundary(s[width]) {
		return Token{}, 0, fmt.Errorf("position %d: unexpected character %q after date", pos+width, s[width])
	}
	tok.Text = s[:width]
	return tok, width, nil
}

func scanIdent(s string) (string, int) {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return "", 0
	}
	i := 1
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return s[:i], i
}

func countDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// atoi is only called on digit runs already validated by the scanner.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '-'
}

func isBoundary(c byte) bool {
	return c == ' ' || c == '\t'
}

func isUnitLetter(c byte) bool {
	switch c {
	case 'h', 'd', 'w', 'm', 'y':
		return true
	}
	return false
}

func unitFor(c byte) Unit {
	switch c {
	case 'h':
		return UnitHour
	case 'd':
		return UnitDay
	case 'w':
		return UnitWeek
	case 'm':
		return UnitMonth
	default:
		return UnitYear
	}
}
