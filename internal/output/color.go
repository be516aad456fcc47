package output

import (
	"io"
	"os"
)

// ResolveColorMode maps the --color flag onto an effective TTY decision.
// "always" and "never" force the answer; anything else (including the
// default "auto") defers to the detected terminal state.
func ResolveColorMode(mode string, detectedTTY bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return detectedTTY
}

// IsTTY reports whether w is an interactive terminal. Anything that is
// not an *os.File backed by a character device counts as non-interactive,
// which covers pipes, files, and the buffers used in tests.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
