package cmd

import (
	"fmt"
	"io"

	"github.com/haierkeys/bitshared-cli/internal/app"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print out version info and exit. // 打印版本信息并退出。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd, app.GetVersion(), func(w io.Writer) {
			fmt.Fprintf(w, "v%s ( Git:%s ) BuidTime:%s\n", app.Version, app.GitTag, app.BuildTime)
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
