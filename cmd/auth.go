package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword prompts on the terminal without echo; piped stdin is read as one line
// readPassword 从终端读取密码，不回显
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseID 解析命令行中的数字参数
func parseID(name, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, code.ErrorInvalidParams.WithDetails(name + " must be a number: " + s)
	}
	return v, nil
}

func init() {
	var password string

	loginCmd := &cobra.Command{
		Use:   "login <username> [--password pw]",
		Short: "Log in and remember the session // 登录并保存会话",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				user, err := a.UserService.Login(ctx, &dto.LoginRequest{Username: args[0], Password: password})
				if err != nil {
					return err
				}
				return render(cmd, user, func(w io.Writer) {
					fmt.Fprintf(w, "%s: %s (%s)\n", code.MsgLoginSuccess.Msg(), user.Username, user.Role.Label(a.Config().App.Lang))
				})
			})
		},
	}
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "password, prompted when omitted")

	var email, regPassword string
	registerCmd := &cobra.Command{
		Use:   "register <username> --email addr [--password pw]",
		Short: "Create an account and log in // 注册并自动登录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if regPassword == "" {
				p, err := readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				regPassword = p
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				user, err := a.UserService.Register(ctx, &dto.RegisterRequest{Username: args[0], Password: regPassword, Email: email})
				if err != nil {
					return err
				}
				return render(cmd, user, func(w io.Writer) {
					fmt.Fprintf(w, "%s: %s\n", code.MsgRegisterDone.Msg(), user.Username)
				})
			})
		},
	}
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&regPassword, "password", "p", "", "password, prompted when omitted")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session // 退出登录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.UserService.Logout(ctx); err != nil {
					return err
				}
				return message(cmd, code.MsgOperationDone.Msg())
			})
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session // 显示当前会话",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				s := a.Session.Current()
				return render(cmd, s, func(w io.Writer) {
					if !s.IsLoggedIn() {
						fmt.Fprintln(w, code.ErrorNotLoggedIn.Msg())
						return
					}
					fmt.Fprintf(w, "%s #%d %s\n", s.Username, s.UserID, s.Role.Label(a.Config().App.Lang))
				})
			})
		},
	}

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
