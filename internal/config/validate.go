/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"imagemarker/internal/vector"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Validate checks cfg against the embedded JSON schema and verifies that the
// guide color parses.
func Validate(cfg AppConfig) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	var errs []error
	for _, e := range res.Errors() {
		errs = append(errs, fmt.Errorf("%s: %s", e.Field(), e.Description()))
	}
	if _, err := vector.ParseColor(cfg.Guides.Color); err != nil {
		errs = append(errs, fmt.Errorf("guides.color: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
