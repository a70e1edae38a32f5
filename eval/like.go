// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import "strings"

// Like reports whether s matches pattern, supporting:
//   - "%" or "*": any run of characters (including none)
//   - "_": exactly one character
//   - "[abc]" / "[a-z]" / "[^abc]": a character class, with ranges and
//     leading-^ negation
//   - "\x": an escaped literal for any special character
//   - a leading "(?i)" makes the match case-insensitive
//
// It is implemented as straightforward recursive backtracking over the
// pattern, which is simple to reason about and fast enough for the
// per-row predicate evaluation the executor uses it for.
func Like(s, pattern string) bool {

	if strings.HasPrefix(pattern, "(?i)") {
		return likeMatch(strings.ToLower(s), strings.ToLower(pattern[4:]))
	}
	return likeMatch(s, pattern)

}

func likeMatch(s, pattern string) bool {

	sr := []rune(s)
	pr := []rune(pattern)
	return matchHere(sr, pr)

}

func matchHere(s, p []rune) bool {

	if len(p) == 0 {
		return len(s) == 0
	}

	switch p[0] {

	case '\\':
		if len(p) < 2 {
			return false
		}
		if len(s) == 0 || s[0] != p[1] {
			return false
		}
		return matchHere(s[1:], p[2:])

	case '%', '*':
		// try every possible split, including matching zero characters.
		for i := 0; i <= len(s); i++ {
			if matchHere(s[i:], p[1:]) {
				return true
			}
		}
		return false

	case '_':
		if len(s) == 0 {
			return false
		}
		return matchHere(s[1:], p[1:])

	case '[':
		end := indexRune(p, ']')
		if end < 0 {
			// unterminated class: treat '[' as a literal.
			if len(s) == 0 || s[0] != '[' {
				return false
			}
			return matchHere(s[1:], p[1:])
		}
		if len(s) == 0 {
			return false
		}
		if !matchClass(s[0], p[1:end]) {
			return false
		}
		return matchHere(s[1:], p[end+1:])

	default:
		if len(s) == 0 || s[0] != p[0] {
			return false
		}
		return matchHere(s[1:], p[1:])

	}

}

func indexRune(rs []rune, target rune) int {
	for i, r := range rs {
		if r == target {
			return i
		}
	}
	return -1
}

// matchClass evaluates "[...]" class contents (without the brackets)
// against one character, honoring a leading "^" negation and "a-z" ranges.
func matchClass(c rune, class []rune) bool {

	negate := false
	if len(class) > 0 && class[0] == '^' {
		negate = true
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			if c >= class[i] && c <= class[i+2] {
				matched = true
			}
			i += 2
			continue
		}
		if class[i] == c {
			matched = true
		}
	}

	if negate {
		return !matched
	}
	return matched

}
