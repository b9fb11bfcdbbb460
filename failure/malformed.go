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

// MalformedNumber is the error for a variable-length number that is empty,
// runs off the end of its buffer or is not in canonical form.
type MalformedNumber struct {
	Description Description
	Offset      int
}

// Error implements the error interface.
func (m MalformedNumber) Error() string {
	return fmt.Sprintf("malformed number (offset: %d): %s", m.Offset, m.Description)
}

// MalformedExpression is the error for a binary script expression that can
// not be decoded.
type MalformedExpression struct {
	Description Description
	Offset      int
}

// Error implements the error interface.
func (m MalformedExpression) Error() string {
	return fmt.Sprintf("malformed expression (offset: %d): %s", m.Offset, m.Description)
}
