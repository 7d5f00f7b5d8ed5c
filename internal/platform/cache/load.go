package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// getOrLoad is the read-through sequence shared by every store. The shared
// load runs on a context detached from the first caller, so a caller that
// goes away does not fail the others waiting on the same key. Each caller
// still stops waiting when its own ctx is done.
func getOrLoad[T any](
	ctx context.Context,
	flight *singleflight.Group,
	key string,
	get func(context.Context, string) (T, bool),
	set func(context.Context, string, T),
	loader func(context.Context) (T, error),
	keep func(T) bool,
) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := get(ctx, key); ok {
		return value, nil
	}

	shared := context.WithoutCancel(ctx)
	result := flight.DoChan(key, func() (any, error) {
		if cached, ok := get(shared, key); ok {
			return cached, nil
		}

		loaded, err := loader(shared)
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(loaded) {
			set(shared, key, loaded)
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("unexpected cached value type %T", res.Val)
		}
		return typed, nil
	}
}
