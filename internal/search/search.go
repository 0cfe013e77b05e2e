// Package search compiles and caches the regular expressions used by the
// buffer's forward/backward search, so repeated n/N lookups on the same
// pattern don't pay recompilation cost.
package search

import (
	"fmt"
	"regexp"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pym-editor/pym/internal/log"
)

// Pattern is a compiled search expression.
type Pattern = regexp.Regexp

const (
	cacheTTL             = 10 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
)

var patterns = cache.New(cacheTTL, cacheCleanupInterval)

// Compile returns the compiled form of expr, serving from cache when
// available. Pattern syntax is Go's RE2 (POSIX-extended/PCRE-equivalent
// for the subset the editor's ex-command and search surfaces expose).
func Compile(expr string) (*Pattern, error) {
	if cached, ok := patterns.Get(expr); ok {
		re, ok := cached.(*Pattern)
		if !ok {
			log.Error(log.CatBuffer, "search cache type mismatch", "expr", expr)
		} else {
			return re, nil
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("search: invalid pattern %q: %w", expr, err)
	}
	patterns.Set(expr, re, cache.DefaultExpiration)
	return re, nil
}
