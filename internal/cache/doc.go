// Package cache provides the generic keyed cache behind texture view
// caches and blitter shader maps.
//
// # Cache[K, V]
//
// A lazily populated map that never evicts. Values are created on first
// request and kept until the owner clears the cache, typically when the
// owning storage or blitter is released.
//
//	views := cache.New[srvKey, d3d11.ShaderResourceView]()
//	srv, err := views.GetOrCreate(key, func() (d3d11.ShaderResourceView, error) {
//	    return device.CreateShaderResourceView(tex, &desc)
//	})
//
// # Thread Safety
//
// Cache is not safe for concurrent use. Every cache belongs to a single
// storage or blitter, which is only driven from the GL command thread.
package cache
