package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("memexplorer %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n", arg)
			printUsage()
			os.Exit(1)
		}
	}

	m, err := newModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`memexplorer - watch an allocation-tracking registry live

Usage:
  memexplorer [flags]

Flags:
  -h, --help      Show this help
  -v, --version   Show version information

Keys:
  space/p   pause or resume the workload
  c         copy the leak report to the clipboard
  r         release every live block
  q         quit`)
}
