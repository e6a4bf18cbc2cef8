package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemcore/poker"
)

var (
	redSuit   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	blackSuit = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
)

// EvalCmd ranks seven cards and prints the best five
type EvalCmd struct {
	Cards []string `arg:"" help:"Seven cards, e.g. 'As Kd' 'Qh Jh Th 2c 3d'"`
}

func (cmd *EvalCmd) Run() error {
	return evaluate(os.Stdout, strings.Join(cmd.Cards, " "))
}

func evaluate(w io.Writer, input string) error {
	cards, err := poker.ParseCards(input)
	if err != nil {
		return err
	}
	rank, err := poker.Evaluate(cards...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s  %s\n", renderCards(poker.BestFive(cards)), rank)
	return nil
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackSuit
		if c.Suit.IsRed() {
			style = redSuit
		}
		parts[i] = style.Render(c.Rank.String() + c.Suit.Symbol())
	}
	return strings.Join(parts, " ")
}
