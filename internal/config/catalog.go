// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/hireflow/hireflow/internal/extraction"
)

// BuildCatalog returns the default field catalog extended with
// Catalog.ExtraPatterns. Fields are extended in catalog order so the result
// does not depend on map iteration.
func (c *Config) BuildCatalog() (extraction.Catalog, error) {
	catalog := extraction.DefaultCatalog()
	for field := range c.Catalog.ExtraPatterns {
		if _, ok := catalog.Lookup(extraction.FieldName(field)); !ok {
			return nil, fmt.Errorf("%w: catalog.extra_patterns: %w %q", ErrInvalidConfig, extraction.ErrUnknownField, field)
		}
	}

	for _, name := range catalog.Names() {
		exprs := c.Catalog.ExtraPatterns[string(name)]
		if len(exprs) == 0 {
			continue
		}
		var err error
		if catalog, err = catalog.WithPatterns(name, exprs...); err != nil {
			return nil, fmt.Errorf("%w: catalog.extra_patterns: %v", ErrInvalidConfig, err)
		}
	}
	return catalog, nil
}
