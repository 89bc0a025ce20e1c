package filter

import "fmt"

// TokenType identifies the kind of a lexed filter token.
type TokenType int

const (
	// TokenTag is a bare identifier: include notes carrying the tag.
	TokenTag TokenType = iota
	// TokenNotTag is a '!'-prefixed identifier: exclude notes carrying the tag.
	TokenNotTag
	// TokenComparator is '>' or '<'; it qualifies the next date or duration.
	TokenComparator
	// TokenDate is a date literal at year, year-month, or year-month-day
	// granularity.
	TokenDate
	// TokenDuration is a relative duration such as "7d" or "3m".
	TokenDuration
	// TokenOperator is the conjunction "AND" or "OR".
	TokenOperator
	// TokenEOF terminates every token stream.
	TokenEOF
)

// Comparator is the kind of a comparator token.
type Comparator int

const (
	CompareNone Comparator = iota
	CompareGreater
	CompareLess
)

// Granularity is the precision of a date literal.
type Granularity int

const (
	GranYear Granularity = iota
	GranYearMonth
	GranYearMonthDay
)

// Unit is the unit of a duration literal.
type Unit int

const (
	UnitHour Unit = iota
	UnitDay
	UnitWeek
	UnitMonth // approximated as 30 days
	UnitYear  // approximated as 365 days
)

// Operator is the kind of a conjunction token.
type Operator int

const (
	OpAnd Operator = iota
	OpOr
)

// Token is one element of a tokenized filter expression. Type selects which
// of the typed fields are meaningful; Text and Pos always refer back to the
// source input.
type Token struct {
	Type TokenType
	Text string // raw source text of the token
	Pos  int    // byte offset of the token in the input

	Name    string      // TokenTag, TokenNotTag: tag name
	Compare Comparator  // TokenComparator
	Year    int         // TokenDate
	Month   int         // TokenDate (GranYearMonth and finer)
	Day     int         // TokenDate (GranYearMonthDay only)
	Gran    Granularity // TokenDate
	Amount  int64       // TokenDuration
	Unit    Unit        // TokenDuration
	Op      Operator    // TokenOperator
}

func (t TokenType) String() string {
	switch t {
	case TokenTag:
		return "tag"
	case TokenNotTag:
		return "negated tag"
	case TokenComparator:
		return "comparator"
	case TokenDate:
		return "date"
	case TokenDuration:
		return "duration"
	case TokenOperator:
		return "operator"
	case TokenEOF:
		return "end of input"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}
