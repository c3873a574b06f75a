package naming

import (
	"strconv"
	"strings"

	"dupe-arranger/internal/model"
)

// Counter limits.
const (
	MaxLeadingDigits = 10
	MaxCountFrom     = 100
	MinIncrementBy   = 1
	MaxIncrementBy   = 10
)

// Config is either Numeric or Custom.
type Config interface {
	Validate() error
	name(i int, base string) string
}

// Counter renders the number embedded in a name.
type Counter struct {
	LeadingDigits int
	CountFrom     int
	IncrementBy   int
	AddSpace      bool
	Delimiter     Delimiter
}

// Value is the number for copy i.
func (c Counter) Value(i int) int {
	return c.CountFrom + i*c.IncrementBy
}

// Format renders copy i's number: LeadingDigits zeros are always prepended,
// whatever the width of the number itself, then the delimiter is applied.
func (c Counter) Format(i int) string {
	return c.Delimiter.Wrap(strings.Repeat("0", c.LeadingDigits) + strconv.Itoa(c.Value(i)))
}

func (c Counter) validate(field string) error {
	if c.LeadingDigits < 0 || c.LeadingDigits > MaxLeadingDigits {
		return model.Invalidf("naming: %s leading digits %d outside [0, %d]", field, c.LeadingDigits, MaxLeadingDigits)
	}
	if c.CountFrom < 0 || c.CountFrom > MaxCountFrom {
		return model.Invalidf("naming: %s count from %d outside [0, %d]", field, c.CountFrom, MaxCountFrom)
	}
	if c.IncrementBy < MinIncrementBy || c.IncrementBy > MaxIncrementBy {
		return model.Invalidf("naming: %s increment %d outside [%d, %d]", field, c.IncrementBy, MinIncrementBy, MaxIncrementBy)
	}
	if !c.Delimiter.valid() {
		return model.Invalidf("naming: %s delimiter %d unknown", field, int(c.Delimiter))
	}
	return nil
}

// Numeric appends a counter to the template's name.
type Numeric struct {
	Counter
}

func (n Numeric) Validate() error {
	return n.Counter.validate("numeric")
}

func (n Numeric) name(i int, base string) string {
	if n.AddSpace {
		return base + " " + n.Format(i)
	}
	return base + n.Format(i)
}

// Part is a custom prefix or suffix: literal text plus an optional counter.
type Part struct {
	Text     string
	Numerate bool
	Counter
}

func (p *Part) empty() bool {
	return p == nil || (p.Text == "" && !p.Numerate)
}

func (p *Part) body(i int) string {
	if p.Numerate {
		return p.Text + p.Format(i)
	}
	return p.Text
}

// Custom optionally replaces the base name and wraps it in a prefix and suffix.
// An empty Replacement leaves only the prefix and suffix. AddSpace on the
// prefix puts a space after the prefix block; on the suffix, before it.
type Custom struct {
	ReplaceFullName bool
	Replacement     string
	Prefix          *Part
	Suffix          *Part
}

func (c Custom) Validate() error {
	if c.Prefix != nil && c.Prefix.Numerate {
		if err := c.Prefix.Counter.validate("prefix"); err != nil {
			return err
		}
	}
	if c.Suffix != nil && c.Suffix.Numerate {
		if err := c.Suffix.Counter.validate("suffix"); err != nil {
			return err
		}
	}
	return nil
}

func (c Custom) name(i int, base string) string {
	if c.ReplaceFullName {
		base = c.Replacement
	}

	var b strings.Builder
	if !c.Prefix.empty() {
		b.WriteString(c.Prefix.body(i))
		if c.Prefix.AddSpace {
			b.WriteByte(' ')
		}
	}
	b.WriteString(base)
	if !c.Suffix.empty() {
		if c.Suffix.AddSpace {
			b.WriteByte(' ')
		}
		b.WriteString(c.Suffix.body(i))
	}
	return b.String()
}
