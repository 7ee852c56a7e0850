//go:build windows

package termio

// WatchResize has no Windows equivalent of SIGWINCH. It returns a channel
// that never fires and a no-op stop, so the event loop's resize path is
// simply never taken on this platform.
func WatchResize() (<-chan struct{}, func()) {
	return nil, func() {}
}
