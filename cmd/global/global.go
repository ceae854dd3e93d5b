package global

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// RenderTable renders the given table with the default style of all commands
func RenderTable(tab table.Table) (string, error) {
	tableConfig := &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}

	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, tableConfig); err != nil {
		return "", err
	}
	return buf.String(), nil
}
