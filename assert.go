package softrast

import "fmt"

// assertf panics with a formatted message when cond is false and the
// package is built with the softrast_debug tag. In release builds it is a
// no-op and the check is expected to be eliminated by the compiler.
//
// Only call it outside per-pixel loops: its arguments are still evaluated.
func assertf(cond bool, format string, args ...any) {
	if debugAssertions && !cond {
		panic(fmt.Sprintf("softrast: "+format, args...))
	}
}
