package filter

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// testNow anchors duration resolution so compiled output is deterministic.
var testNow = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCompileTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single tag",
			input:    "vim",
			expected: "tags = vim",
		},
		{
			name:     "single negated tag",
			input:    "!draft",
			expected: "tags != draft",
		},
		{
			name:     "two tags with AND",
			input:    "foo AND bar",
			expected: "tags = foo AND tags = bar",
		},
		{
			name:     "tag OR negated tag",
			input:    "foo OR !bar",
			expected: "tags = foo OR tags != bar",
		},
		{
			name:     "underscores and hyphens",
			input:    "side_project AND note-taking",
			expected: "tags = side_project AND tags = note-taking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.input, testNow)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Compile(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompileDates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "bare year expands to both bounds",
			input: "2019",
			// 2019-01-01T00:00:00Z .. 2019-12-31T23:59:59Z
			expected: "date > 1546300800 AND date < 1577836799",
		},
		{
			name:  "year-month with greater-than",
			input: ">2019-10",
			// 2019-10-01T00:00:00Z
			expected: "date > 1569888000",
		},
		{
			name:  "year-month with less-than",
			input: "<2019-10",
			// 2019-10-31T23:59:59Z
			expected: "date < 1572566399",
		},
		{
			name:  "full date with less-than",
			input: "<2019-10-05",
			// 2019-10-05T23:59:59Z
			expected: "date < 1570319999",
		},
		{
			name:  "december rolls into next year",
			input: "2019-12",
			// 2019-12-01T00:00:00Z .. 2019-12-31T23:59:59Z
			expected: "date > 1575158400 AND date < 1577836799",
		},
		{
			name:  "leap year february",
			input: "<2020-02",
			// 2020-02-29T23:59:59Z
			expected: "date < 1583020799",
		},
		{
			name:     "tag and date range",
			input:    "vim AND 2019",
			expected: "tags = vim AND date > 1546300800 AND date < 1577836799",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.input, testNow)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Compile(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompileDurations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "duration without comparator is a lower bound",
			input:    "7d",
			expected: fmt.Sprintf("date > %d", testNow.Add(-7*24*time.Hour).Unix()),
		},
		{
			name:     "duration with greater-than",
			input:    ">12h",
			expected: fmt.Sprintf("date > %d", testNow.Add(-12*time.Hour).Unix()),
		},
		{
			name:     "duration with less-than",
			input:    "<2w",
			expected: fmt.Sprintf("date < %d", testNow.Add(-14*24*time.Hour).Unix()),
		},
		{
			name:     "month approximated as thirty days",
			input:    "3m",
			expected: fmt.Sprintf("date > %d", testNow.Add(-90*24*time.Hour).Unix()),
		},
		{
			name:     "year approximated as 365 days",
			input:    "1y",
			expected: fmt.Sprintf("date > %d", testNow.Add(-365*24*time.Hour).Unix()),
		},
		{
			name:     "tag and recency window",
			input:    "vim AND >2w",
			expected: fmt.Sprintf("tags = vim AND date > %d", testNow.Add(-14*24*time.Hour).Unix()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.input, testNow)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Compile(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompileInvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		term  string
	}{
		{name: "month thirteen", input: "2019-13", term: "2019-13"},
		{name: "day zero", input: "2019-10-00", term: "2019-10-00"},
		{name: "february thirtieth", input: "2019-02-30", term: "2019-02-30"},
		{name: "bad date after valid tag", input: "vim AND 2019-02-30", term: "2019-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.input, testNow)
			if err == nil {
				t.Fatalf("Expected error for %q, got output %q", tt.input, got)
			}
			if got != "" {
				t.Errorf("Expected no partial output, got %q", got)
			}

			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("Expected *CompileError, got %T: %v", err, err)
			}
			if cerr.Term != tt.term {
				t.Errorf("Expected offending term %q, got %q", tt.term, cerr.Term)
			}
		})
	}
}

func TestCompilePendingComparatorLastOneWins(t *testing.T) {
	// a second comparator before a date is consumed overwrites the first;
	// this falls out of the single pending-comparator state variable
	tokens := []Token{
		{Type: TokenComparator, Text: ">", Compare: CompareGreater},
		{Type: TokenComparator, Text: "<", Compare: CompareLess},
		{Type: TokenDate, Text: "2019", Year: 2019, Gran: GranYear},
		{Type: TokenEOF},
	}

	got, err := CompileTokens(tokens, testNow)
	if err != nil {
		t.Fatalf("CompileTokens failed: %v", err)
	}
	expected := "date < 1577836799"
	if got != expected {
		t.Errorf("CompileTokens = %q, want %q", got, expected)
	}
}

func TestCompileTrailingComparatorDiscarded(t *testing.T) {
	// a comparator with nothing left to qualify is dropped at end of input
	tokens := []Token{
		{Type: TokenTag, Text: "vim", Name: "vim"},
		{Type: TokenComparator, Text: ">", Compare: CompareGreater},
		{Type: TokenEOF},
	}

	got, err := CompileTokens(tokens, testNow)
	if err != nil {
		t.Fatalf("CompileTokens failed: %v", err)
	}
	if got != "tags = vim" {
		t.Errorf("CompileTokens = %q, want %q", got, "tags = vim")
	}
}

func TestCompileStopsAtEOF(t *testing.T) {
	tokens := []Token{
		{Type: TokenTag, Text: "vim", Name: "vim"},
		{Type: TokenEOF},
		{Type: TokenTag, Text: "ignored", Name: "ignored"},
	}

	got, err := CompileTokens(tokens, testNow)
	if err != nil {
		t.Fatalf("CompileTokens failed: %v", err)
	}
	if got != "tags = vim" {
		t.Errorf("Tokens after EOF must be ignored, got %q", got)
	}
}

func TestProcessSilentOnBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "stray paren", input: "tag("},
		{name: "unterminated negation", input: "!"},
		{name: "two terms without operator", input: "vim bash"},
		{name: "invalid date", input: "2019-02-30"},
		{name: "already compiled output", input: "tags = vim AND date > 1546300800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Process(tt.input, testNow); got != "" {
				t.Errorf("Process(%q) = %q, want empty", tt.input, got)
			}
		})
	}
}

func TestProcessEmptyInput(t *testing.T) {
	if got := Process("", testNow); got != "" {
		t.Errorf("Process(\"\") = %q, want empty", got)
	}
}

func TestCompileConcurrent(t *testing.T) {
	// compilation is a pure function; concurrent calls share nothing
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				got, err := Compile("vim AND >2019-10 OR !draft", testNow)
				if err != nil {
					t.Errorf("Compile failed: %v", err)
					return
				}
				if got != "tags = vim AND date > 1569888000 OR tags != draft" {
					t.Errorf("unexpected output %q", got)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
