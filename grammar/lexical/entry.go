package lexical

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// LexEntry is one token kind. Entries listed earlier win when two patterns match the same lexeme.
type LexEntry struct {
	Kind    string `json:"kind"`
	Pattern string `json:"pattern"`

	// Skip drops tokens of this kind, such as white spaces, from token streams.
	Skip bool `json:"skip,omitempty"`
}

type LexSpec struct {
	Name    string      `json:"name"`
	Entries []*LexEntry `json:"entries"`
}

func (s *LexSpec) Validate() error {
	if len(s.Entries) <= 0 {
		return fmt.Errorf("the lexical specification must have at least one entry")
	}
	{
		ks := map[string]struct{}{}
		for _, e := range s.Entries {
			if e.Kind == "" {
				return fmt.Errorf("a kind name must be a non-empty string; pattern: %v", e.Pattern)
			}
			if _, exist := ks[e.Kind]; exist {
				return fmt.Errorf("kinds `%v` are duplicates", e.Kind)
			}
			ks[e.Kind] = struct{}{}
		}
	}
	{
		kinds := make([]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			kinds = append(kinds, e.Kind)
		}
		errs := findSpellingInconsistenciesErrors(kinds)
		if len(errs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v", errs[0])
			for _, err := range errs[1:] {
				fmt.Fprintf(&b, "\n%v", err)
			}
			return fmt.Errorf("%v", b.String())
		}
	}

	return nil
}

// SkipKinds returns the kinds marked with Skip.
func (s *LexSpec) SkipKinds() []string {
	var kinds []string
	for _, e := range s.Entries {
		if e.Skip {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func findSpellingInconsistenciesErrors(ids []string) []error {
	var errs []error
	for _, dup := range FindSpellingInconsistencies(ids) {
		err := fmt.Errorf("these identifiers are treated as the same. please use the same spelling: %v", strings.Join(dup, ", "))
		errs = append(errs, err)
	}
	return errs
}

// FindSpellingInconsistencies finds spelling inconsistencies in identifiers. The identifiers are considered to be the same
// if they are spelled the same when expressed in UpperCamelCase. For example, `left_paren` and `LeftParen` are spelled the same
// in UpperCamelCase. Thus they are considered to be spelling inconsistency.
func FindSpellingInconsistencies(ids []string) [][]string {
	m := map[string][]string{}
	for _, id := range removeDuplicates(ids) {
		c := SnakeCaseToUpperCamelCase(id)
		m[c] = append(m[c], id)
	}

	var duplicated [][]string
	for _, camels := range m {
		if len(camels) == 1 {
			continue
		}
		slices.Sort(camels)
		duplicated = append(duplicated, camels)
	}
	slices.SortFunc(duplicated, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})

	return duplicated
}

func removeDuplicates(s []string) []string {
	unique := slices.Clone(s)
	slices.Sort(unique)
	return slices.Compact(unique)
}

func SnakeCaseToUpperCamelCase(snake string) string {
	elems := strings.Split(snake, "_")
	for i, e := range elems {
		if len(e) == 0 {
			continue
		}
		elems[i] = strings.ToUpper(string(e[0])) + e[1:]
	}

	return strings.Join(elems, "")
}
