// Copyright 2025 walteh LLC
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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 45 // Base width for filename
	outcomeWidth = 18 // Width for outcome text
)

// 🎯 FormatOutcome formats a file outcome for display
func FormatOutcome(path string, o Outcome, detail string) string {
	var prefix string
	switch o {
	case OutcomeAnnotated:
		prefix = color.GreenString("✓")
	case OutcomeAlreadyAnnotated:
		prefix = color.CyanString("•")
	case OutcomeUnresolved:
		prefix = color.YellowString("⚠")
	default:
		prefix = color.HiBlackString("-")
	}

	line := fmt.Sprintf("%s%s %-*s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, path,
		outcomeWidth, o.String(),
	)
	if detail != "" {
		line += " " + detail
	}
	return strings.TrimRight(line, " ")
}
