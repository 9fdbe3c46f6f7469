package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func printTree(w io.Writer, nodes []*domain.FileNode) {
	if len(nodes) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	domain.WalkTree(nodes, func(n *domain.FileNode, depth int) bool {
		name := n.Name
		if n.IsDir() {
			name += "/"
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), name)
		return true
	})
}

// requireEdit 检查当前用户是否可编辑该课程
func requireEdit(ctx context.Context, a *internalApp.App, courseNo int64) error {
	if !a.Permission.CanEdit(ctx, courseNo) {
		return code.ErrorPermissionDenied
	}
	return nil
}

func init() {
	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "Browse and manage course files // 课程文件树",
	}

	showCmd := &cobra.Command{
		Use:   "show <courseNo>",
		Short: "Print the course file tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				tree, err := a.FileTree.Fetch(ctx, courseNo)
				if err != nil {
					return err
				}
				return render(cmd, tree, func(w io.Writer) { printTree(w, tree) })
			})
		},
	}

	mkdirCmd := &cobra.Command{
		Use:   "mkdir <courseNo> <parentPath> <name>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := requireEdit(ctx, a, courseNo); err != nil {
					return err
				}
				if err := a.FileTree.CreateDirectory(ctx, args[1], args[2], courseNo); err != nil {
					return err
				}
				return render(cmd, a.FileTree.Tree(), func(w io.Writer) { printTree(w, a.FileTree.Tree()) })
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <courseNo> <path>",
		Short: "Delete a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := requireEdit(ctx, a, courseNo); err != nil {
					return err
				}
				if err := a.FileTree.Delete(ctx, args[1], courseNo); err != nil {
					return err
				}
				return render(cmd, a.FileTree.Tree(), func(w io.Writer) { printTree(w, a.FileTree.Tree()) })
			})
		},
	}

	uploadCmd := &cobra.Command{
		Use:   "upload <courseNo> <targetDir> <file>...",
		Short: "Upload local files into a course directory",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			targetDir, files := args[1], args[2:]

			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := requireEdit(ctx, a, courseNo); err != nil {
					return err
				}

				g, gctx := errgroup.WithContext(ctx)
				g.SetLimit(max(a.Config().Transfer.UploadConcurrency, 1))
				for _, f := range files {
					g.Go(func() error {
						fh, err := os.Open(f)
						if err != nil {
							return err
						}
						defer fh.Close()

						err = a.FileTree.Upload(gctx, dto.FilePart{FileName: filepath.Base(f), Reader: fh}, targetDir, courseNo)
						if err != nil {
							a.Logger().Warn("upload failed", zap.String(logger.FieldPath, f), zap.Error(err))
							return err
						}
						fmt.Fprintf(cmd.ErrOrStderr(), "uploaded %s\n", f)
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}
				return render(cmd, a.FileTree.Tree(), func(w io.Writer) { printTree(w, a.FileTree.Tree()) })
			})
		},
	}

	downloadCmd := &cobra.Command{
		Use:   "download <path>",
		Short: "Download a course file into the configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				loc, err := a.FileTree.Download(ctx, args[0])
				if err != nil {
					return err
				}
				return message(cmd, loc)
			})
		},
	}

	treeCmd.AddCommand(showCmd, mkdirCmd, rmCmd, uploadCmd, downloadCmd)
	rootCmd.AddCommand(treeCmd)
}
