package main

import (
	"os"

	cmdpkg "github.com/zhigui-projects/gosm4/run/cmd"
)

func main() {
	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if cmdpkg.MainCmd().Execute() != nil {
		os.Exit(1)
	}
}
