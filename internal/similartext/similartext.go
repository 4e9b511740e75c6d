// Copyright 2020-2021 Dolthub, Inc.
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

// Package similartext suggests the closest matches to a name among a set of
// known names. It is used to improve "unknown identifier" style errors.
package similartext

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// maxDistanceIgnored divides the length of the searched name: no suggestion is
// made when the smallest edit distance exceeds len(src)/maxDistanceIgnored.
const maxDistanceIgnored = 2

func distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Find returns a string suggesting the names most similar to src, in a form
// that can be appended directly to an error message. It returns an empty
// string when src is empty or when every name is too different.
func Find(names []string, src string) string {
	if src == "" {
		return ""
	}

	minDist := -1
	var matches []string
	for _, name := range names {
		d := distance(name, src)
		switch {
		case minDist == -1 || d < minDist:
			minDist = d
			matches = []string{name}
		case d == minDist:
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 || minDist*maxDistanceIgnored > len(src) {
		return ""
	}

	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matches, " or "))
}

// FindFromMap does the same as Find but using the keys of a map as the
// known names.
func FindFromMap(m interface{}, src string) string {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Map {
		panic("FindFromMap requires a map")
	}
	var names []string
	for _, k := range rv.MapKeys() {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return Find(names, src)
}
