package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/openmined/drivemirror/internal/config"
)

var (
	// https://github.com/muesli/termenv/blob/master/ansicolors.go
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	bold  = lipgloss.NewStyle().Bold(true)
)

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "%s\t%s\n", gray.Render("CONFIG"), cyan.Render(cfg.Path))
	fmt.Fprintf(w, "%s\t%s\n", gray.Render("CREDENTIALS"), cyan.Render(cfg.CredentialsPath))
	fmt.Fprintf(w, "%s\t%s\n", gray.Render("TOKEN"), cyan.Render(cfg.TokenPath))
	fmt.Fprintf(w, "%s\t%s\n", gray.Render("SOURCE"), cyan.Render(displayPath(cfg.SourceComponents())))
	if cfg.TargetDrive != "" {
		fmt.Fprintf(w, "%s\t%s\n", gray.Render("TARGET DRIVE"), cyan.Render(cfg.TargetDrive))
	}
	fmt.Fprintf(w, "%s\t%s\n", gray.Render("TARGET"), cyan.Render(displayPath(cfg.TargetComponents())))
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %s\n", red.Render("ERROR"), err)
}

func displayPath(parts []string) string {
	s := "/"
	for i, p := range parts {
		if i > 0 {
			s += "/"
		}
		s += p
	}
	return s
}
