package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"

	"github.com/spf13/cobra"
)

func printComment(w io.Writer, c *domain.Comment) {
	indent := strings.Repeat("  ", min(c.Level, 1))
	target := ""
	if c.TargetUsername != nil {
		target = " -> @" + *c.TargetUsername
	}
	fmt.Fprintf(w, "%s#%d %s%s: %s  (likes %d, replies %d)\n",
		indent, c.ID, c.Author.DisplayName(), target, c.Content, c.LikeCount, c.ReplyCount)
	printAttachments(w, c.Attachments)
}

func printCommentPage(w io.Writer, p *domain.CommentPage) {
	for _, c := range p.Content {
		printComment(w, c)
	}
	fmt.Fprintf(w, "page %d, %d of %d\n", p.PageNumber, len(p.Content), p.TotalElements)
}

// optionalID 返回 flag 被设置时的 ID 指针
func optionalID(cmd *cobra.Command, name string, v int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func init() {
	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "Topic comments and replies // 评论",
	}

	page := dto.DefaultPage()
	bindPage := func(c *cobra.Command) {
		c.Flags().IntVar(&page.Page, "page", 0, "page number, zero-based")
		c.Flags().IntVar(&page.Size, "size", 0, "page size, default from config")
	}

	listCmd := &cobra.Command{
		Use:   "list <topicId>",
		Short: "List root comments of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topicId", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.LoadRootComments(ctx, topicID, page); err != nil {
					return err
				}
				p := a.Forum.State().RootComments
				return render(cmd, p, func(w io.Writer) { printCommentPage(w, p) })
			})
		},
	}
	bindPage(listCmd)

	repliesCmd := &cobra.Command{
		Use:   "replies <rootId>",
		Short: "List replies under a root comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootID, err := parseID("rootId", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.LoadReplies(ctx, rootID, page); err != nil {
					return err
				}
				p := a.Forum.State().Replies
				return render(cmd, p, func(w io.Writer) { printCommentPage(w, p) })
			})
		},
	}
	bindPage(repliesCmd)

	detailCmd := &cobra.Command{
		Use:   "detail <commentId>",
		Short: "Show a comment with reply previews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("commentId", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				d, err := a.Forum.CommentDetail(ctx, id)
				if err != nil {
					return err
				}
				return render(cmd, d, func(w io.Writer) {
					if d.Comment != nil {
						printComment(w, d.Comment)
					}
					for _, r := range d.PreviewReplies {
						printComment(w, r)
					}
					fmt.Fprintf(w, "%d replies\n", d.ReplyCount)
				})
			})
		},
	}

	var content string
	var parentID, rootID int64
	var attach []string
	postCmd := &cobra.Command{
		Use:   "post <topicId> --content c [--parent id --root id] [--attach file]...",
		Short: "Post a root comment or a reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topicId", args[0])
			if err != nil {
				return err
			}
			parts, closeAll, err := openParts(attach)
			if err != nil {
				return err
			}
			defer closeAll()

			req := &dto.CreateCommentRequest{TopicID: topicID, Content: content, ParentID: optionalID(cmd, "parent", parentID)}
			root := optionalID(cmd, "root", rootID)

			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if root == nil && req.ParentID != nil {
					id, err := a.Forum.RootOf(ctx, *req.ParentID)
					if err != nil {
						return err
					}
					root = &id
				}
				c, err := a.Forum.PostComment(ctx, req, root, parts)
				if c == nil {
					return err
				}
				if rerr := render(cmd, c, func(w io.Writer) { printComment(w, c) }); rerr != nil {
					return rerr
				}
				return err
			})
		},
	}
	fs := postCmd.Flags()
	fs.StringVarP(&content, "content", "m", "", "comment body")
	fs.Int64Var(&parentID, "parent", 0, "replied comment id")
	fs.Int64Var(&rootID, "root", 0, "root comment of the thread, resolved from --parent when omitted")
	fs.StringArrayVarP(&attach, "attach", "a", nil, "attachment file, repeatable")

	likeCmd := func(use string, liked bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <commentId> <topicId>",
			Short: strings.ToUpper(use[:1]) + use[1:] + " a comment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("commentId", args[0])
				if err != nil {
					return err
				}
				topicID, err := parseID("topicId", args[1])
				if err != nil {
					return err
				}
				return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
					if err := a.Forum.ToggleCommentLike(ctx, id, liked, topicID); err != nil {
						return err
					}
					return message(cmd, code.MsgOperationDone.Msg())
				})
			},
		}
	}

	var rmRoot int64
	rmCmd := &cobra.Command{
		Use:   "rm <commentId> <topicId> [--root id]",
		Short: "Delete your comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("commentId", args[0])
			if err != nil {
				return err
			}
			topicID, err := parseID("topicId", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.RemoveComment(ctx, id, topicID, optionalID(cmd, "root", rmRoot)); err != nil {
					return err
				}
				return message(cmd, code.MsgOperationDone.Msg())
			})
		},
	}
	rmCmd.Flags().Int64Var(&rmRoot, "root", 0, "root comment whose replies should be reloaded")

	attachmentCmd := &cobra.Command{
		Use:   "attachment <commentId> <attachmentId>",
		Short: "Download a comment attachment into the configured storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("commentId", args[0])
			if err != nil {
				return err
			}
			attID, err := parseID("attachmentId", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				d, err := a.Forum.CommentDetail(ctx, id)
				if err != nil {
					return err
				}
				if d.Comment == nil {
					return code.ErrorInvalidParams.WithDetails(fmt.Sprintf("comment %d not found", id))
				}
				t, err := a.Forum.LoadTopic(ctx, d.Comment.TopicID)
				if err != nil {
					return err
				}
				for _, att := range d.Comment.Attachments {
					if att.ID == attID {
						loc, err := a.Forum.DownloadAttachment(ctx, att, t.ForumNo)
						if err != nil {
							return err
						}
						return message(cmd, loc)
					}
				}
				return code.ErrorInvalidParams.WithDetails(fmt.Sprintf("attachment %d not found on comment %d", attID, id))
			})
		},
	}

	commentsCmd.AddCommand(listCmd, repliesCmd, detailCmd, postCmd,
		likeCmd("like", false), likeCmd("unlike", true), rmCmd, attachmentCmd)
	rootCmd.AddCommand(commentsCmd)
}
