package config

import "testing"

// setTestHome points os.UserHomeDir() (via $HOME) at dir for the
// duration of the calling test. The config/session/lastexec path
// helpers all resolve through $HOME, so redirecting it is the only way
// to exercise Save/Load without touching the real user's home directory.
// t.Setenv restores the previous value automatically when the test ends.
func setTestHome(t *testing.T, dir string) func() {
	t.Helper()
	t.Setenv("HOME", dir)
	return func() {}
}
