package cmd

import (
	"context"
	"fmt"
	"io"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/internal/service"

	"github.com/jinzhu/copier"
	"github.com/spf13/cobra"
)

func printProfile(w io.Writer, p *domain.Profile, lang string) {
	fmt.Fprintf(w, "%s (@%s) #%d\n", p.DisplayName(), p.Username, p.UserID)
	fmt.Fprintf(w, "  role:  %s\n", p.Role.Label(lang))
	fmt.Fprintf(w, "  email: %s\n", p.Email)
	fmt.Fprintf(w, "  major: %s\n", strOr(p.Major, "-"))
	fmt.Fprintf(w, "  bio:   %s\n", strOr(p.Bio, "-"))
}

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile // 个人资料",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				p, err := a.UserService.FetchProfile(ctx)
				if err != nil {
					return err
				}
				return render(cmd, p, func(w io.Writer) { printProfile(w, p, a.Config().App.Lang) })
			})
		},
	}

	edit := new(dto.ProfileRequest)
	editCmd := &cobra.Command{
		Use:   "edit [--nickname n] [--bio b] [--major m]",
		Short: "Create or update your profile; omitted fields keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				req := &dto.ProfileRequest{}
				if current, err := a.UserService.FetchProfile(ctx); err == nil {
					req = service.ProfileToRequest(current)
				}
				if err := copier.CopyWithOption(req, edit, copier.Option{IgnoreEmpty: true}); err != nil {
					return err
				}

				p, err := a.UserService.SaveProfile(ctx, req)
				if err != nil {
					return err
				}
				return render(cmd, p, func(w io.Writer) { printProfile(w, p, a.Config().App.Lang) })
			})
		},
	}
	fs := editCmd.Flags()
	fs.StringVar(&edit.Nickname, "nickname", "", "nickname")
	fs.StringVar(&edit.Bio, "bio", "", "bio")
	fs.StringVar(&edit.Major, "major", "", "major")

	profileCmd.AddCommand(showCmd, editCmd)
	rootCmd.AddCommand(profileCmd)
}
