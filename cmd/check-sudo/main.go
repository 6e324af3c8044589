package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fkcurrie/neomatrix-golang/internal/privilege"
)

func main() {
	report := privilege.Check()
	printReport(os.Stdout, os.Args[0], report)
	if !report.CanDrivePWM() {
		os.Exit(1)
	}
}

func printReport(w io.Writer, exe string, r privilege.Report) {
	fmt.Fprintf(w, "Running as root: %t\n", r.Root())
	fmt.Fprintf(w, "Executable path: %s\n", exe)
	fmt.Fprintf(w, "User ID: %d\n", r.EUID)
	fmt.Fprintf(w, "Group ID: %d\n", r.EGID)

	if !r.Root() {
		fmt.Fprintf(w, "\nThe ws281x driver needs root, run with sudo:\nsudo %s\n", exe)
	}

	fmt.Fprintln(w)
	switch {
	case r.DevMem == nil:
		fmt.Fprintf(w, "Successfully opened %s (required for the ws281x driver)\n", privilege.DevMem)
	case errors.Is(r.DevMem, os.ErrPermission):
		fmt.Fprintf(w, "Permission denied when accessing %s. You need to run with sudo.\n", privilege.DevMem)
	default:
		fmt.Fprintf(w, "Error accessing %s: %v\n", privilege.DevMem, r.DevMem)
	}
}
