//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const (
	binDir  = "bin"
	binName = "mhfcexport"
)

var Default = Build.Binary

type Build mg.Namespace

// Builds the mhfcexport binary into bin/ stamped with the git version.
func (Build) Binary() error {
	ldflags := fmt.Sprintf("-s -w -X main.version=%s", gitVersion())
	out := filepath.Join(binDir, binName)
	_, err := executeCmd("go", withArgs("build", "-ldflags", ldflags, "-o", out, "./cmd/mhfcexport"), withStream())
	return err
}

// Builds release binaries for the common desktop platforms.
func (Build) Release() error {
	ldflags := fmt.Sprintf("-s -w -X main.version=%s", gitVersion())
	for _, target := range [][2]string{{"linux", "amd64"}, {"darwin", "arm64"}, {"windows", "amd64"}} {
		out := filepath.Join(binDir, fmt.Sprintf("%s-%s-%s", binName, target[0], target[1]))
		if target[0] == "windows" {
			out += ".exe"
		}
		_, err := executeCmd("go",
			withArgs("build", "-ldflags", ldflags, "-o", out, "./cmd/mhfcexport"),
			withEnv("GOOS="+target[0], "GOARCH="+target[1], "CGO_ENABLED=0"),
			withStream())
		if err != nil {
			return err
		}
	}
	return nil
}
