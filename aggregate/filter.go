// Copyright 2026 Google Inc.
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

package aggregate

import (
	"sort"
	"strings"
)

// NameFilter decides which chips take part in the average.
//
// It has two variants. MatchAll, which is also the zero value, matches
// every chip. AllowOnly matches chips whose name is exactly one of the
// given names; AllowOnly() with no names matches nothing.
type NameFilter struct {
	restricted bool
	names      map[string]struct{}
}

// MatchAll returns a filter that matches every chip.
func MatchAll() NameFilter {
	return NameFilter{}
}

// AllowOnly returns a filter that matches only the named chips.
// Matching is exact and case-sensitive. Duplicates are ignored.
func AllowOnly(names ...string) NameFilter {
	f := NameFilter{restricted: true, names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		f.names[n] = struct{}{}
	}
	return f
}

// Restricted returns false for MatchAll and true for an allow-list.
func (f NameFilter) Restricted() bool {
	return f.restricted
}

// Matches reports whether a chip with the given name passes the filter.
func (f NameFilter) Matches(name string) bool {
	if !f.restricted {
		return true
	}
	_, ok := f.names[name]
	return ok
}

// Names returns the allow-list in sorted order, or nil for MatchAll.
func (f NameFilter) Names() []string {
	if !f.restricted {
		return nil
	}
	names := make([]string, 0, len(f.names))
	for n := range f.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f NameFilter) String() string {
	if !f.restricted {
		return "all chips"
	}
	return "chips [" + strings.Join(f.Names(), " ") + "]"
}
