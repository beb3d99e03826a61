//go:build linux || darwin

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// setNice adjusts the scheduling priority of the whole process. Positive
// values lower priority, negative values raise it (needs privileges).
func setNice(n int) {
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, n); err != nil {
		fmt.Fprintf(os.Stderr, "setpriority(%d): %v\n", n, err)
	}
}
