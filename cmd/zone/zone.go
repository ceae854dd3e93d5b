package zone

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "zone",
	Short:            "Thermal zone related commands",
	Long:             ``,
	TraverseChildren: true,
}
