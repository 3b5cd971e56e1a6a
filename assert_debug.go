//go:build softrast_debug

package softrast

const debugAssertions = true
