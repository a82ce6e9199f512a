// This file is part of dwarfrecon.
//
// dwarfrecon is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dwarfrecon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dwarfrecon.  If not, see <https://www.gnu.org/licenses/>.

// Package normalizer rewrites a rendered type string (or a fully
// assembled file) into its conventional short form: collapsing a
// standard-library container's default allocator/comparator/hash
// arguments away, and stripping implementation-specific inline
// namespaces. Cleanup applies in a fixed-point loop so nested containers
// (vector<vector<T, A>, A>) collapse all the way down.
package normalizer

import (
	"regexp"
	"strings"
)

// fixedSubstitutions are unconditional, order-independent literal
// replacements, applied once before the pattern-based loop.
var fixedSubstitutions = []struct{ from, to string }{
	{"std::__1::", "std::"},
	{"std::__ndk1::", "std::"},
	{
		"std::basic_string<char, std::char_traits<char>, std::allocator<char> >",
		"std::string",
	},
	{
		"std::basic_string_view<char, std::char_traits<char> >",
		"std::string_view",
	},
	{
		"std::chrono::time_point<std::chrono::steady_clock, std::chrono::duration<long long, std::ratio<1L, 1000000000L> > >",
		"std::chrono::steady_clock::time_point",
	},
}

// equalityGroup lists submatch indices (1-based, as in a Go template
// "$N") that must all compare equal, after trimming whitespace, for a
// collapse rule to fire. RE2 (Go's regexp engine) has no backreference
// support, unlike the Python original's re module, so a rule that in
// Python reads a single pattern with a `\1` backreference is expressed
// here as ordinary capture groups plus this explicit equality check.
type equalityGroup []int

type collapseRule struct {
	pattern *regexp.Regexp
	equal   []equalityGroup
	replace string
}

var collapseRules = []collapseRule{
	{
		pattern: regexp.MustCompile(`std::unique_ptr<(.+?), std::default_delete<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2}},
		replace: "std::unique_ptr<$1>",
	},
	{
		pattern: regexp.MustCompile(`std::vector<(.+?), std::allocator<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2}},
		replace: "std::vector<$1>",
	},
	{
		pattern: regexp.MustCompile(`std::list<(.+?), std::allocator<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2}},
		replace: "std::list<$1>",
	},
	{
		pattern: regexp.MustCompile(`std::deque<(.+?), std::allocator<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2}},
		replace: "std::deque<$1>",
	},
	{
		pattern: regexp.MustCompile(`std::queue<(.+?), std::deque<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2}},
		replace: "std::queue<$1>",
	},
	{
		pattern: regexp.MustCompile(
			`std::unordered_map<(.+?), (.+?), std::hash<(.+?)\s*>, std::equal_to<(.+?)\s*>, std::allocator<std::pair<const (.+?), (.+?)\s*>\s*>\s*>`,
		),
		equal: []equalityGroup{
			{1, 3, 4, 5},
			{2, 6},
		},
		replace: "std::unordered_map<$1, $2>",
	},
	{
		pattern: regexp.MustCompile(
			`std::unordered_set<(.+?), std::hash<(.+?)\s*>, std::equal_to<(.+?)\s*>, std::allocator<(.+?)\s*>\s*>`,
		),
		equal:   []equalityGroup{{1, 2, 3, 4}},
		replace: "std::unordered_set<$1>",
	},
	{
		pattern: regexp.MustCompile(
			`std::map<(.+?), (.+?), std::less<(.+?)\s*>, std::allocator<std::pair<const (.+?), (.+?)\s*>\s*>\s*>`,
		),
		equal: []equalityGroup{
			{1, 3, 4},
			{2, 5},
		},
		replace: "std::map<$1, $2>",
	},
	{
		pattern: regexp.MustCompile(`std::set<(.+?), std::less<(.+?)\s*>, std::allocator<(.+?)\s*>\s*>`),
		equal:   []equalityGroup{{1, 2, 3}},
		replace: "std::set<$1>",
	},
	{
		pattern: regexp.MustCompile(`gsl::span<(.+), \d+UL>`),
		replace: "gsl::span<$1>",
	},
	{
		pattern: regexp.MustCompile(`glm::vec<(\d), float, \(glm::qualifier\)0>`),
		replace: "glm::vec$1",
	},
	{
		pattern: regexp.MustCompile(`glm::vec<(\d), int, \(glm::qualifier\)0>`),
		replace: "glm::ivec$1",
	},
	{
		pattern: regexp.MustCompile(`glm::mat<(\d), (\d), float, \(glm::qualifier\)0>`),
		replace: "glm::mat$1x$2",
	},
	{
		pattern: regexp.MustCompile(`Bedrock::Result<(.+?), std::error_code>`),
		replace: "Bedrock::Result<$1>",
	},
}

// Normalize applies the fixed substitutions once, then the pattern-based
// collapse rules repeatedly until the string stops changing.
func Normalize(s string) string {
	for _, sub := range fixedSubstitutions {
		s = strings.ReplaceAll(s, sub.from, sub.to)
	}

	for {
		next := s
		for _, rule := range collapseRules {
			next = applyRule(next, rule)
		}
		if next == s {
			return s
		}
		s = next
	}
}

func applyRule(s string, rule collapseRule) string {
	return rule.pattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := rule.pattern.FindStringSubmatch(match)
		for _, set := range rule.equal {
			want := strings.TrimSpace(groups[set[0]])
			for _, idx := range set[1:] {
				if strings.TrimSpace(groups[idx]) != want {
					return match
				}
			}
		}
		return rule.pattern.ReplaceAllString(match, rule.replace)
	})
}
