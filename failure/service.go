// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package failure

import (
	"fmt"
)

// UnknownKey is the error for a signing request addressed to a key that is
// not held by the signer.
type UnknownKey struct {
	Description Description
	Key         string
}

// Error implements the error interface.
func (u UnknownKey) Error() string {
	return fmt.Sprintf("unknown key (key: %s): %s", u.Key, u.Description)
}

// ForbiddenOperation is the error for a signing request that contains an
// operation kind the signer is not configured to sign.
type ForbiddenOperation struct {
	Description Description
	Kind        string
}

// Error implements the error interface.
func (f ForbiddenOperation) Error() string {
	return fmt.Sprintf("forbidden operation (kind: %s): %s", f.Kind, f.Description)
}

// StaleWatermark is the error for a consensus signing request at or below the
// level and round that was last signed for the same key.
type StaleWatermark struct {
	Description Description
	Key         string
	Level       int32
	Round       int32
}

// Error implements the error interface.
func (s StaleWatermark) Error() string {
	return fmt.Sprintf("stale watermark (key: %s, level: %d, round: %d): %s", s.Key, s.Level, s.Round, s.Description)
}
