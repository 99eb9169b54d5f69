package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"pwrate/config"
	"pwrate/pipewire"
	"pwrate/rate"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// showStatus prints the parsed set and every rate we can observe
// without mutating anything. Live lookups are best effort.
func showStatus(cfg config.Config, allowed rate.Set, current int, known bool) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	rates := ""
	for i, r := range allowed {
		if i > 0 {
			rates += " "
		}
		if r == current {
			rates += render(currentStyle, strconv.Itoa(r)+"*")
		} else {
			rates += strconv.Itoa(r)
		}
	}
	fmt.Printf("%s %s\n", render(labelStyle, "Allowed rates:"), rates)

	if known {
		fmt.Printf("%s %d\n", render(labelStyle, "Conf file rate:"), current)
	} else {
		fmt.Printf("%s %s\n", render(labelStyle, "Conf file rate:"),
			render(dimStyle, fmt.Sprintf("unknown (assuming %d)", current)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if gr, err := pipewire.GraphRate(ctx); err == nil {
		fmt.Printf("%s %d\n", render(labelStyle, "Graph rate:"), gr)
	}
	if sr, err := pipewire.ServerRate(); err == nil {
		fmt.Printf("%s %d\n", render(labelStyle, "Server rate:"), sr)
	}

	fmt.Printf("%s %d\n", render(labelStyle, "Next rate:"), allowed.Next(current))
}
