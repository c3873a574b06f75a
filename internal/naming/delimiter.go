package naming

import (
	"fmt"
	"strings"

	"dupe-arranger/internal/model"
)

// Delimiter selects how an embedded counter is wrapped.
type Delimiter int

const (
	DelimiterNone Delimiter = iota
	Parentheses
	Brackets
	Braces
	Underscore
	Hyphen
)

var delimiterNames = [...]string{"none", "parentheses", "brackets", "braces", "underscore", "hyphen"}

var delimiterWraps = [...][2]string{
	{"", ""},
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
	{"_", "_"},
	{"-", "-"},
}

func (d Delimiter) String() string {
	if !d.valid() {
		return fmt.Sprintf("Delimiter(%d)", int(d))
	}
	return delimiterNames[d]
}

func (d Delimiter) valid() bool {
	return d >= DelimiterNone && d <= Hyphen
}

// Wrap surrounds s with the delimiter's opening and closing text.
func (d Delimiter) Wrap(s string) string {
	if !d.valid() {
		return s
	}
	w := delimiterWraps[d]
	return w[0] + s + w[1]
}

// ParseDelimiter accepts the lowercase names used in job files; "" means none.
func ParseDelimiter(s string) (Delimiter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DelimiterNone, nil
	}
	for i, n := range delimiterNames {
		if n == s {
			return Delimiter(i), nil
		}
	}
	return DelimiterNone, model.Invalidf("naming: unknown delimiter %q", s)
}

// DelimiterFlags is the toggle-row form of a Delimiter, as edited in a host UI.
// At most one flag may be set.
type DelimiterFlags struct {
	Parentheses bool
	Brackets    bool
	Braces      bool
	Underscore  bool
	Hyphen      bool
}

// Toggle switches d on or off. Switching one on clears all others.
func (f *DelimiterFlags) Toggle(d Delimiter, on bool) {
	if on {
		*f = DelimiterFlags{}
	}
	switch d {
	case Parentheses:
		f.Parentheses = on
	case Brackets:
		f.Brackets = on
	case Braces:
		f.Braces = on
	case Underscore:
		f.Underscore = on
	case Hyphen:
		f.Hyphen = on
	}
}

// Resolve returns the single selected delimiter, or DelimiterNone when no flag is set.
func (f DelimiterFlags) Resolve() (Delimiter, error) {
	set := []struct {
		on bool
		d  Delimiter
	}{
		{f.Parentheses, Parentheses},
		{f.Brackets, Brackets},
		{f.Braces, Braces},
		{f.Underscore, Underscore},
		{f.Hyphen, Hyphen},
	}

	picked := DelimiterNone
	n := 0
	for _, s := range set {
		if s.on {
			picked = s.d
			n++
		}
	}
	if n > 1 {
		return DelimiterNone, model.Invalidf("naming: %d delimiters selected", n)
	}
	return picked, nil
}
