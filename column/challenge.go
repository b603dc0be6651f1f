// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package column

import "fmt"

// Challenge is a verifier-supplied random value, revealed only after every
// advice column of its Phase has been committed.
type Challenge struct {
	index uint64
	phase uint8
}

// NewChallenge constructs a challenge usable after the given phase.
func NewChallenge(index uint64, phase uint8) Challenge {
	return Challenge{index: index, phase: phase}
}

// Index returns the challenge's allocation index.
func (c Challenge) Index() uint64 { return c.index }

// Phase returns the phase after which this challenge becomes available.
func (c Challenge) Phase() uint8 { return c.phase }

// String renders a challenge as "challenge[i]", the form query identifiers
// use.
func (c Challenge) String() string {
	return fmt.Sprintf("challenge[%d]", c.index)
}
