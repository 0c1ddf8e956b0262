//go:build darwin && cgo

package main

import _ "github.com/yourusername/borders/internal/platform/darwin"
