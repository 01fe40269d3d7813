/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tables.go
Description: Terminal tables for Mercy. Renders the capability listing and mutate
session results with lipgloss.
*/

package reporting

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kleascm/mercy/pkg/core"
)

// Theme groups the styles used by terminal output
type Theme struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style
}

// DefaultTheme returns the standard styles
func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	}
}

func (th Theme) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.Border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.Header
			}
			return th.Cell
		})
}

// CapabilityTable renders every category with its aliases and protocols
func CapabilityTable(th Theme, caps []core.Capability) string {
	t := th.newTable("Method", "Aliases", "Protocols")
	for _, c := range caps {
		t.Row(c.Category.String(), strings.Join(c.Aliases, ", "), strings.Join(c.Protocols, ", "))
	}
	return th.Title.Render("Mercy capabilities") + "\n" + t.String()
}

// SessionTable renders the candidates of a session. Resolution columns are
// included only when the session resolved candidates.
func SessionTable(th Theme, s *Session) string {
	headers := []string{"#", "Domain", "Position", "Bit"}
	if s.Resolution {
		headers = append(headers, "Addresses")
	}
	t := th.newTable(headers...)

	for i, c := range s.Candidates {
		row := []string{strconv.Itoa(i + 1), c.Domain, strconv.Itoa(c.Position), strconv.Itoa(c.Bit)}
		if s.Resolution {
			row = append(row, describeAddresses(c))
		}
		t.Row(row...)
	}

	title := th.Title.Render("Bit-flip candidates for " + s.Seed)
	return title + "\n" + t.String()
}

func describeAddresses(c CandidateRecord) string {
	switch {
	case c.Error != "":
		return "error"
	case c.Resolved:
		return strings.Join(c.Addresses, " ")
	default:
		return "-"
	}
}
