package planner

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// WholeScope labels the single unit used when a scope cannot be parsed
const WholeScope = "(whole scope)"

// maxScopeUnits bounds how many units a single range may expand to
const maxScopeUnits = 500

// MaxScopeNumber is the largest explicit scope_start/scope_end accepted as input
const MaxScopeNumber = 100000

var (
	rangePattern   = regexp.MustCompile(`^(?P<prefix>[^0-9]*?)\s*(?P<start>\d+)\s*[~-]\s*(?P<end>\d+)\s*(?P<suffix>[^0-9]*)$`)
	tokenSeparator = regexp.MustCompile(`[,/]|\s{2,}`)
	dashReplacer   = strings.NewReplacer("–", "-", "—", "-", "～", "~")
)

// unitWords are scavenged from the scope text when only a numeric range is given
var unitWords = []string{"단원"}

type scopeRange struct {
	prefix, suffix string
	start, end     int
}

func matchRange(text string) (scopeRange, bool) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return scopeRange{}, false
	}
	start, err1 := strconv.Atoi(m[rangePattern.SubexpIndex("start")])
	end, err2 := strconv.Atoi(m[rangePattern.SubexpIndex("end")])
	if err1 != nil || err2 != nil {
		return scopeRange{}, false
	}
	if start > end {
		start, end = end, start
	}
	return scopeRange{
		prefix: m[rangePattern.SubexpIndex("prefix")],
		suffix: m[rangePattern.SubexpIndex("suffix")],
		start:  start,
		end:    end,
	}, true
}

func (r scopeRange) labels() []string {
	// start and end are non-negative here, so end-start cannot overflow
	count := maxScopeUnits
	if r.end-r.start < maxScopeUnits {
		count = r.end - r.start + 1
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, strings.TrimSpace(r.prefix+strconv.FormatUint(uint64(r.start)+uint64(i), 10)+r.suffix))
	}
	return out
}

// ParseScopeText turns a free-text scope description such as "1~5단원",
// "Lesson 1-3" or "A, B, C" into ordered unit labels. It never fails: text
// that yields nothing usable falls back to a single WholeScope unit.
func ParseScopeText(text string) []string {
	s := dashReplacer.Replace(strings.TrimSpace(text))
	if s == "" {
		return []string{WholeScope}
	}
	if r, ok := matchRange(s); ok {
		return r.labels()
	}

	seen := make(map[string]bool)
	var units []string
	for _, part := range tokenSeparator.Split(s, -1) {
		part = strings.TrimSpace(part)
		if !hasLetterOrDigit(part) || seen[part] {
			continue
		}
		seen[part] = true
		units = append(units, part)
		if len(units) == maxScopeUnits {
			break
		}
	}
	if len(units) == 0 {
		return []string{WholeScope}
	}
	return units
}

// BuildScopeUnits derives a subject's units. An explicit numeric range wins
// over the text; the text then only contributes its decoration (the prefix and
// suffix of a range written in it, or a known unit word like "단원").
func BuildScopeUnits(text string, start, end *int) []string {
	if start == nil || end == nil || *start <= 0 || *end <= 0 {
		return ParseScopeText(text)
	}
	r := scopeRange{start: *start, end: *end}
	if r.start > r.end {
		r.start, r.end = r.end, r.start
	}
	normalized := dashReplacer.Replace(strings.TrimSpace(text))
	if tr, ok := matchRange(normalized); ok {
		r.prefix, r.suffix = tr.prefix, tr.suffix
	} else {
		for _, w := range unitWords {
			if strings.Contains(normalized, w) {
				r.suffix = w
				break
			}
		}
	}
	return r.labels()
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
