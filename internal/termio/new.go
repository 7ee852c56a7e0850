package termio

// New constructs the platform-appropriate Backend. Build-tagged
// NewUnix/NewWindows provide the OS-specific implementation.
func New() (Backend, error) {
	return newPlatform()
}
