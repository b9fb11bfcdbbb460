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

// InvalidEncoding is the error for textual input that is not valid in its
// encoding, such as bad hexadecimal or a base58 string with a wrong checksum.
type InvalidEncoding struct {
	Description Description
	Encoding    string
	Input       string
}

// Error implements the error interface.
func (i InvalidEncoding) Error() string {
	return fmt.Sprintf("invalid %s encoding (input: %q): %s", i.Encoding, i.Input, i.Description)
}

// InvalidValue is the error for a value that is rejected at construction.
type InvalidValue struct {
	Description Description
	Field       string
}

// Error implements the error interface.
func (i InvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", i.Field, i.Description)
}
