//go:build repaintdebug

package repaint

const debugAssertions = true
