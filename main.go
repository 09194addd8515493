// file: main.go
// version: 1.1.0
// guid: 6f3a8c50-2e1d-4b97-a8f4-0c5d7e92b314

package main

import (
	"fmt"
	"os"

	"github.com/practiceops/practice-directory/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
