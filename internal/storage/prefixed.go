package storage

import "context"

// Prefixed scopes every key of inner under prefix, e.g. one namespace per
// user. The returned medium supports Swap when inner does.
func Prefixed(inner Medium, prefix string) Medium {
	p := prefixed{inner: inner, prefix: prefix}
	if sw, ok := inner.(Swapper); ok {
		return prefixedSwapper{prefixed: p, sw: sw}
	}
	return p
}

type prefixed struct {
	inner  Medium
	prefix string
}

func (p prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p prefixed) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}

type prefixedSwapper struct {
	prefixed
	sw Swapper
}

func (p prefixedSwapper) Swap(ctx context.Context, key string, old *string, value string) (bool, error) {
	return p.sw.Swap(ctx, p.prefix+key, old, value)
}
