package npm

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves the latest version of every package in names, running
// at most limit lookups at once, and returns caret constraints keyed by
// package name. Any failed lookup fails the whole call.
func ResolveAll(ctx context.Context, r Resolver, names []string, limit int) (map[string]string, error) {
	unique := dedupe(names)
	constraints := make([]string, len(unique))

	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range unique {
		i, name := i, name
		g.Go(func() error {
			version, err := r.Latest(ctx, name)
			if err != nil {
				if errors.Is(err, ErrResolution) {
					return err
				}
				return fmt.Errorf("%w: %s: %v", ErrResolution, name, err)
			}
			c, err := Caret(version)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrResolution, name, err)
			}
			// Each goroutine owns one slot.
			constraints[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(unique))
	for i, name := range unique {
		out[name] = constraints[i]
	}
	return out, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
