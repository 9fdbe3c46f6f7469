package cmd

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/gookit/goutil/dump"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputDump = "dump"
)

// render prints v in the selected output format; text uses the given printer
// render 按输出格式打印结果
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch rootEnv.output {
	case outputJSON:
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputDump:
		dump.P(v)
		return nil
	case outputText, "":
		text(w)
		return nil
	default:
		return code.ErrorInvalidParams.WithDetails("unknown output format: " + rootEnv.output)
	}
}

// message 打印一条结果消息
func message(cmd *cobra.Command, msg string) error {
	return render(cmd, map[string]string{"message": msg}, func(w io.Writer) {
		fmt.Fprintln(w, msg)
	})
}

func strOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
