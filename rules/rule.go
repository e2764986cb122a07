package rules

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrRuleFormat is returned when a rule string is not in SURVIVAL/BIRTH form.
var ErrRuleFormat = errors.New("rule must be in format 'SURVIVAL/BIRTH'")

const separator = "/"

/*
Rule is a Life-like survival/birth rule.

Each set holds neighbor counts as bits of a mask. Digits 0-9 are storable, but a
cell only ever has 0-8 Moore neighbors, so a 9 parses fine and never matches.
*/
type Rule struct {
	survival uint16
	birth    uint16
}

// Presets maps well-known rule names to their SURVIVAL/BIRTH strings
var Presets = map[string]string{
	"conway":   "23/3",
	"highlife": "23/36",
	"custom":   "16/6",
}

// Conway is the standard Game of Life rule
var Conway = MustParse(Presets["conway"])

// Parse reads a rule string such as "23/3" or "23/36"
func Parse(ruleString string) (Rule, error) {
	parts := strings.Split(ruleString, separator)
	if len(parts) != 2 {
		return Rule{}, errors.Wrapf(ErrRuleFormat, "[Parse] expected exactly one %q in %q", separator, ruleString)
	}

	survival, err := parseCounts(parts[0])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] bad survival part in %q", ruleString)
	}
	birth, err := parseCounts(parts[1])
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] bad birth part in %q", ruleString)
	}

	return Rule{survival: survival, birth: birth}, nil
}

// MustParse is like Parse but panics on a malformed rule string
func MustParse(ruleString string) Rule {
	r, err := Parse(ruleString)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves either a preset name or a literal rule string
func Lookup(nameOrRule string) (Rule, error) {
	if s, ok := Presets[strings.ToLower(nameOrRule)]; ok {
		return Parse(s)
	}
	return Parse(nameOrRule)
}

func parseCounts(part string) (mask uint16, err error) {
	for _, c := range part {
		if c < '0' || c > '9' {
			return 0, errors.Wrapf(ErrRuleFormat, "non-digit character %q", c)
		}
		mask |= 1 << uint(c-'0')
	}
	return mask, nil
}

// ShouldSurvive reports whether an alive cell with the given neighbor count stays alive
func (r Rule) ShouldSurvive(neighbors int) bool {
	return has(r.survival, neighbors)
}

// ShouldBeBorn reports whether a dead cell with the given neighbor count comes alive
func (r Rule) ShouldBeBorn(neighbors int) bool {
	return has(r.birth, neighbors)
}

// Apply returns the next state of a cell from its current state and neighbor count
func (r Rule) Apply(neighbors int, alive bool) bool {
	if alive {
		return r.ShouldSurvive(neighbors)
	}
	return r.ShouldBeBorn(neighbors)
}

// Survival returns the survival counts in ascending order
func (r Rule) Survival() []int { return members(r.survival) }

// Birth returns the birth counts in ascending order
func (r Rule) Birth() []int { return members(r.birth) }

// String returns the canonical SURVIVAL/BIRTH form, digits ascending
func (r Rule) String() string {
	var sb strings.Builder
	for _, n := range r.Survival() {
		sb.WriteByte(byte('0' + n))
	}
	sb.WriteString(separator)
	for _, n := range r.Birth() {
		sb.WriteByte(byte('0' + n))
	}
	return sb.String()
}

func has(mask uint16, n int) bool {
	if n < 0 || n > 9 {
		return false
	}
	return mask&(1<<uint(n)) != 0
}

func members(mask uint16) []int {
	out := make([]int, 0, 10)
	for n := 0; n <= 9; n++ {
		if has(mask, n) {
			out = append(out, n)
		}
	}
	return out
}
