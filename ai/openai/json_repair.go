// Copyright 2025 Poiesic Systems
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


package openai

import "strings"

// repairJSON patches the malformation small local models most often produce:
// an object key missing its opening quote, e.g. `{polarity": 0.5}`. Anything
// it does not recognize passes through untouched.
func repairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 16)

	for i := 0; i < len(s); {
		c := s[i]
		out.WriteByte(c)
		i++
		if c != '{' && c != ',' {
			continue
		}

		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			out.WriteByte(s[i])
			i++
		}

		// A bare word here, closed by `":`, is a key that lost its opening
		// quote. Anything else is emitted as-is.
		end := i
		for end < len(s) && isKeyByte(s[end]) {
			end++
		}
		if end > i && end+1 < len(s) && s[end] == '"' && s[end+1] == ':' {
			out.WriteByte('"')
			out.WriteString(strings.TrimRight(s[i:end], " "))
		} else {
			out.WriteString(s[i:end])
		}
		i = end
	}

	return out.String()
}

func isKeyByte(c byte) bool {
	return c == '_' || c == ' ' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
