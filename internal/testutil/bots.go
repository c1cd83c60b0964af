package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Shell scripts usable as bots. They receive the shot board as $1.
const (
	// ScanBotScript fires at the lowest-index unknown cell
	ScanBotScript = `#!/bin/sh
i=0
IFS=,
for c in $1; do
  if [ "$c" = "0" ]; then
    echo "$i"
    exit 0
  fi
  i=$((i+1))
done
exit 1
`
	// ZeroBotScript always fires at cell 0
	ZeroBotScript = "#!/bin/sh\necho 0\n"
	// GarbageBotScript prints a non-integer move
	GarbageBotScript = "#!/bin/sh\necho abc\n"
	// OutOfRangeBotScript prints a move past the last cell
	OutOfRangeBotScript = "#!/bin/sh\necho 100\n"
	// CrashBotScript exits non-zero
	CrashBotScript = "#!/bin/sh\necho 'something broke' >&2\nexit 3\n"
	// ChattyBotScript prints a megabyte of non-integer output
	ChattyBotScript = "#!/bin/sh\nyes abcdefgh | head -c 1000000\n"
	// SleepBotScript hangs for 15 seconds before answering
	SleepBotScript = "#!/bin/sh\nsleep 15\necho 0\n"
)

// WriteBot writes an executable bot script named name into dir and returns its path
func WriteBot(t *testing.T, dir, name, script string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write bot %s: %v", name, err)
	}
	return path
}
