package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"
)

// ColorSchemeFunc builds the help and error color scheme, picking light or
// dark variants based on the detected terminal background.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           c(charmtone.Pepper, charmtone.Salt),
		Title:          charmtone.Charple,
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        charmtone.Malibu,
		Command:        charmtone.Malibu,
		DimmedArgument: c(charmtone.Squid, charmtone.Oyster),
		Comment:        c(charmtone.Squid, charmtone.Oyster),
		Flag:           charmtone.Malibu,
		Argument:       c(charmtone.Pepper, charmtone.Salt),
		Description:    c(charmtone.Pepper, charmtone.Salt),
		FlagDefault:    c(charmtone.Squid, charmtone.Smoke),
		QuotedString:   c(charmtone.Pepper, charmtone.Salt),
		ErrorHeader: [2]color.Color{
			charmtone.Butter,
			charmtone.Cherry,
		},
	}
}
