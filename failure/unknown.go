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

// UnknownTag is the error for a tag byte that does not map to any member of
// the family being decoded.
type UnknownTag struct {
	Description Description
	Family      string
	Tag         byte
}

// Error implements the error interface.
func (u UnknownTag) Error() string {
	return fmt.Sprintf("unknown %s tag (tag: 0x%02x): %s", u.Family, u.Tag, u.Description)
}

// UnknownOperationKind is the error for an operation content tag that is not
// part of the kind table.
type UnknownOperationKind struct {
	Description Description
	Kind        byte
	Offset      int
}

// Error implements the error interface.
func (u UnknownOperationKind) Error() string {
	return fmt.Sprintf("unknown operation kind (kind: %d, offset: %d): %s", u.Kind, u.Offset, u.Description)
}
