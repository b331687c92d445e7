/*
  Copyright 2023 NanaFS Authors.

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.
*/

package types

import (
	"fmt"
	"unicode/utf8"
)

// IndexDocument is the unit handed to a search backend. CreateAt and
// ChangedAt are Unix seconds; backends fill zero values with the index time.
type IndexDocument struct {
	ID        int64  `json:"id"`
	URI       string `json:"uri"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreateAt  int64  `json:"create_at"`
	ChangedAt int64  `json:"changed_at"`
}

func (d *IndexDocument) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if d.ID == 0 || d.URI == "" {
		return fmt.Errorf("%w: document id or uri is empty", ErrInvalidDocument)
	}
	if !utf8.ValidString(d.Title) || !utf8.ValidString(d.Content) {
		return fmt.Errorf("document %d: %w", d.ID, ErrEncoding)
	}
	return nil
}
