package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/domain"

	"github.com/spf13/cobra"
)

func init() {
	permCmd := &cobra.Command{
		Use:   "perm",
		Short: "Course edit permissions and admin roles // 权限管理",
	}

	checkCmd := &cobra.Command{
		Use:   "check <courseNo>",
		Short: "Whether the current user can edit a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				ok := a.Permission.CanEdit(ctx, courseNo)
				return render(cmd, map[string]bool{"canEdit": ok}, func(w io.Writer) {
					fmt.Fprintln(w, strconv.FormatBool(ok))
				})
			})
		},
	}

	var majorNo int64
	grantCmd := &cobra.Command{
		Use:   "grant <username> <role 1-4> [--major no]",
		Short: "Grant a role to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseID("role", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				msg, err := a.AdminService.Grant(ctx, args[0], domain.Role(role), optionalID(cmd, "major", majorNo))
				if err != nil {
					return err
				}
				return message(cmd, msg)
			})
		},
	}
	grantCmd.Flags().Int64Var(&majorNo, "major", 0, "major scope for major admins")

	revokeCmd := &cobra.Command{
		Use:   "revoke <username>",
		Short: "Revoke a user's admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				msg, err := a.AdminService.Revoke(ctx, args[0])
				if err != nil {
					return err
				}
				return message(cmd, msg)
			})
		},
	}

	permCmd.AddCommand(checkCmd, grantCmd, revokeCmd)
	rootCmd.AddCommand(permCmd)
}
