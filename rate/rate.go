// Package rate parses the allowed sample-rate set out of a marked
// config block and computes the cyclic successor of the active rate.
package rate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Sample rates are 4-5 digits (8000..192000 in practice); anything
// shorter or longer on the options line is noise, not a rate.
var numRe = regexp.MustCompile(`(\d{4,5})`)

// Set is the allowed sample rates in Hz, sorted ascending, no
// duplicates, never empty once produced by Parse.
type Set []int

// Parse extracts the allowed rate set from content. The set lives on
// the first line inside the start/end marker block whose trimmed text
// begins with optPrefix; every 4-5 digit integer on that line is a
// rate. The result is sorted and deduplicated.
func Parse(content, startMarker, endMarker, optPrefix string) (Set, error) {
	lines := strings.Split(content, "\n")

	startIdx := indexContaining(lines, startMarker)
	if startIdx < 0 {
		return nil, fmt.Errorf("marker %q not found", startMarker)
	}
	endIdx := indexContaining(lines, endMarker)
	if endIdx < 0 {
		return nil, fmt.Errorf("marker %q not found", endMarker)
	}
	if endIdx <= startIdx {
		return nil, fmt.Errorf("marker %q appears before %q", endMarker, startMarker)
	}

	var optLine string
	for _, l := range lines[startIdx : endIdx+1] {
		if strings.HasPrefix(strings.TrimLeft(l, " \t"), optPrefix) {
			optLine = l
			break
		}
	}
	if optLine == "" {
		return nil, fmt.Errorf("no %q line between the markers", optPrefix)
	}

	var rates []int
	for _, m := range numRe.FindAllString(optLine, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		rates = append(rates, n)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no sample-rate numbers on options line: %s", strings.TrimSpace(optLine))
	}

	sort.Ints(rates)
	out := rates[:1]
	for _, n := range rates[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return Set(out), nil
}

func indexContaining(lines []string, marker string) int {
	for i, l := range lines {
		if strings.Contains(l, marker) {
			return i
		}
	}
	return -1
}

// Next returns the element after current, wrapping from the last back
// to the first. An unrecognized current counts as "before the start",
// so the first element is returned.
func (s Set) Next(current int) int {
	for i, r := range s {
		if r == current {
			return s[(i+1)%len(s)]
		}
	}
	return s[0]
}

// Contains reports whether r is an allowed rate.
func (s Set) Contains(r int) bool {
	for _, v := range s {
		if v == r {
			return true
		}
	}
	return false
}

// Bracket renders the set in PipeWire's array syntax: "[ 44100 48000 ]".
func (s Set) Bracket() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = strconv.Itoa(r)
	}
	return "[ " + strings.Join(parts, " ") + " ]"
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ", ")
}

// ExtractRate pulls the first 4-5 digit integer out of s, for scraping
// rates from tool output. Returns false when none is present.
func ExtractRate(s string) (int, bool) {
	m := numRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
