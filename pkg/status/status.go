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

// 📊 Outcome is the terminal state of a candidate file
type Outcome int

const (
	OutcomeUnknown          Outcome = iota
	OutcomeAnnotated                // Declaration inserted and file written
	OutcomeAlreadyAnnotated         // Declaration already present
	OutcomeIneligible               // Missing provider or contentType
	OutcomeUnresolved               // No identity override and no category mapping
)

// Outcomes lists every terminal outcome in report order
var Outcomes = []Outcome{
	OutcomeAnnotated,
	OutcomeAlreadyAnnotated,
	OutcomeIneligible,
	OutcomeUnresolved,
}

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeAnnotated:
		return "annotated"
	case OutcomeAlreadyAnnotated:
		return "already annotated"
	case OutcomeIneligible:
		return "not a model"
	case OutcomeUnresolved:
		return "no mapping"
	default:
		return "unknown"
	}
}

// Skipped reports whether the outcome counts as skipped
func (o Outcome) Skipped() bool {
	return o != OutcomeAnnotated
}

// 🧮 Tally counts outcomes across a run
type Tally struct {
	Updated int
	Skipped int

	counts map[Outcome]int
}

// 🏭 NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{counts: make(map[Outcome]int)}
}

// Record adds one file with the given outcome
func (t *Tally) Record(o Outcome) {
	if t.counts == nil {
		t.counts = make(map[Outcome]int)
	}
	t.counts[o]++
	if o.Skipped() {
		t.Skipped++
	} else {
		t.Updated++
	}
}

// Count returns how many files ended with outcome o
func (t *Tally) Count(o Outcome) int {
	return t.counts[o]
}

// Total returns the number of files recorded
func (t *Tally) Total() int {
	return t.Updated + t.Skipped
}
