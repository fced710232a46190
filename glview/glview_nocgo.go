//go:build tinygo || !cgo

package glview

import "errors"

func run(scene Scene, cfg Config) error {
	return errors.New("require cgo for windowed rendering")
}
