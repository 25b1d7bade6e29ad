package main

import (
	"os"

	"golang.org/x/term"
)

// terminalReport lists what each standard descriptor looks like and the
// first size any of them reported.
type terminalReport struct {
	Size   *terminalSize   `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probeTerminal() terminalReport {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	report := terminalReport{Probes: make([]terminalProbe, 0, len(files))}
	for i, f := range files {
		report.Probes = append(report.Probes, probeFile(names[i], f, &report))
	}
	return report
}

func probeFile(name string, f *os.File, report *terminalReport) terminalProbe {
	probe := terminalProbe{Name: name}
	if f == nil {
		return probe
	}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	if report.Size == nil {
		report.Size = &terminalSize{Source: name, Width: width, Height: height}
	}
	return probe
}
