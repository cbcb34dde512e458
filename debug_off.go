//go:build !repaintdebug

package repaint

// debugAssertions turns recoverable driver bugs into panics.
// Build with -tags repaintdebug to enable.
const debugAssertions = false
