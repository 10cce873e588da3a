package browser

import (
	"runtime"
	"testing"
)

func TestOpenLauncherMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("rundll32 resolution does not go through PATH alone")
	}

	// An empty PATH makes the platform launcher unresolvable, so Open
	// must surface the lookup failure instead of silently doing nothing.
	t.Setenv("PATH", t.TempDir())

	if err := Open("http://localhost:9000/"); err == nil {
		t.Error("Open() error = nil, want launcher lookup failure")
	}
}

func TestOpenUnsupportedPlatform(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		t.Skipf("%s has a launcher", runtime.GOOS)
	}
	if err := Open("http://localhost:9000/"); err == nil {
		t.Error("Open() error = nil, want unsupported platform error")
	}
}
