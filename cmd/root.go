package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configDefault string

type rootFlags struct {
	config string // Specified configuration file path // 指定要使用的配置文件路径
	output string // Output format text|json|dump // 输出格式
}

var rootEnv = new(rootFlags)

var rootCmd = &cobra.Command{
	Use:           "bitshared [-c config_file] [-o text|json|dump]",
	Short:         "BitShared course sharing client",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpTemplate()
		cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootEnv.config, "config", "c", "", "config file")
	pf.StringVarP(&rootEnv.output, "output", "o", outputText, "output format: text, json or dump")
}

func Execute(c string) {
	configDefault = c

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
