package main

import (
	"errors"
	"fmt"
	"os"
)

// errNoNote reports that the requested note does not exist or is not markdown.
var errNoNote = errors.New("no markdown note")

// A missing note exits with its own code so scripts can skip it.
const (
	exitFailure = 1
	exitNoNote  = 2
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "timeline: %s: %v\n", msg, err)
	if errors.Is(err, errNoNote) {
		os.Exit(exitNoNote)
	}
	os.Exit(exitFailure)
}
