//go:build !cgo

package main

import (
	"errors"
	"image"
)

func runWindow(_ *image.RGBA, _ string, _ int) error {
	return errors.New("preview window requires cgo (build/run with CGO_ENABLED=1)")
}
