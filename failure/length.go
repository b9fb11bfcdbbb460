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

// InvalidLength is the error for input whose size does not match what its
// family requires.
type InvalidLength struct {
	Description Description
	Family      string
	Have        int
	Want        int
}

// Error implements the error interface.
func (i InvalidLength) Error() string {
	return fmt.Sprintf("invalid %s length (have: %d, want: %d): %s", i.Family, i.Have, i.Want, i.Description)
}

// TruncatedOperation is the error for a buffer that holds fewer bytes than a
// field requires.
type TruncatedOperation struct {
	Description Description
	Field       string
	Offset      int
	Have        int
	Want        int
}

// Error implements the error interface.
func (t TruncatedOperation) Error() string {
	return fmt.Sprintf("truncated operation (field: %s, offset: %d, have: %d, want: %d): %s", t.Field, t.Offset, t.Have, t.Want, t.Description)
}
