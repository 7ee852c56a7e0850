//go:build windows

package termio

func newPlatform() (Backend, error) { return NewWindows() }
