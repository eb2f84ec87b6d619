//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Writes the sample asset tree to demo/ and loads it.
func (Run) Demo() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run demo...")
	if _, err := executeCmd("bin/anima-assets", withArgs("-demo", "demo"), withStream()); err != nil {
		return err
	}
	return nil
}

// Loads the sample asset tree and reloads it whenever a file in demo/ changes.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/anima-assets", withArgs("-demo", "demo", "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}
