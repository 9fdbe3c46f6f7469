package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/util"

	"github.com/spf13/cobra"
)

// openParts opens local files as multipart parts; close must be called
// openParts 打开本地附件
func openParts(paths []string) ([]dto.FilePart, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	parts := make([]dto.FilePart, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		parts = append(parts, dto.FilePart{FileName: filepath.Base(p), Reader: f})
	}
	return parts, closeAll, nil
}

func printAttachments(w io.Writer, atts []*domain.Attachment) {
	for _, att := range atts {
		fmt.Fprintf(w, "  [#%d] %s (%s)\n", att.ID, att.OriginalName, util.FormatSize(att.FileSize))
	}
}

func printTopic(w io.Writer, t *domain.Topic) {
	fmt.Fprintf(w, "#%d %s\n", t.ID, t.Title)
	fmt.Fprintf(w, "by %s at %s  views %d  replies %d  likes %d\n",
		t.Author.DisplayName(), t.CreatedAt, t.ViewCount, t.ReplyCount, t.LikeCount)
	if t.ReferencePath != nil && *t.ReferencePath != "" {
		fmt.Fprintf(w, "ref: %s\n", *t.ReferencePath)
	}
	fmt.Fprintf(w, "\n%s\n", t.Content)
	printAttachments(w, t.Attachments)
}

func init() {
	forumCmd := &cobra.Command{
		Use:   "forum",
		Short: "Course forum topics // 课程论坛",
	}

	infoCmd := &cobra.Command{
		Use:   "info <courseNo>",
		Short: "Show forum metadata and its topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseNo, err := parseID("courseNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.InitForum(ctx, courseNo); err != nil {
					return err
				}
				st := a.Forum.State()
				return render(cmd, st, func(w io.Writer) {
					fmt.Fprintf(w, "forum #%d %s, %d topics\n", st.Forum.ForumNo, st.Forum.CourseName, st.Forum.TopicCount)
					for _, t := range st.Topics {
						fmt.Fprintf(w, "%6d  %s  (%s)\n", t.ID, t.Title, t.Author.DisplayName())
					}
				})
			})
		},
	}

	topicsCmd := &cobra.Command{
		Use:   "topics <forumNo>",
		Short: "List topics of a forum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forumNo, err := parseID("forumNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.LoadTopics(ctx, forumNo); err != nil {
					return err
				}
				topics := a.Forum.State().Topics
				return render(cmd, topics, func(w io.Writer) {
					for _, t := range topics {
						fmt.Fprintf(w, "%6d  %s  (%s, %d replies)\n", t.ID, t.Title, t.Author.DisplayName(), t.ReplyCount)
					}
				})
			})
		},
	}

	topicCmd := &cobra.Command{
		Use:   "topic <topicId>",
		Short: "Show one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topicId", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				t, err := a.Forum.LoadTopic(ctx, topicID)
				if err != nil {
					return err
				}
				return render(cmd, t, func(w io.Writer) { printTopic(w, t) })
			})
		},
	}

	post := new(dto.CreateTopicRequest)
	var ref string
	var attach []string
	postCmd := &cobra.Command{
		Use:   "post <forumNo> --title t --content c [--ref path] [--attach file]...",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forumNo, err := parseID("forumNo", args[0])
			if err != nil {
				return err
			}
			post.ForumNo = forumNo
			if cmd.Flags().Changed("ref") {
				post.ReferencePath = &ref
			}
			parts, closeAll, err := openParts(attach)
			if err != nil {
				return err
			}
			defer closeAll()

			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				t, err := a.Forum.CreateTopic(ctx, post, parts)
				if err != nil {
					return err
				}
				return render(cmd, t, func(w io.Writer) { printTopic(w, t) })
			})
		},
	}
	fs := postCmd.Flags()
	fs.StringVarP(&post.Title, "title", "t", "", "topic title")
	fs.StringVarP(&post.Content, "content", "m", "", "topic body")
	fs.StringVar(&ref, "ref", "", "referenced course file path")
	fs.StringArrayVarP(&attach, "attach", "a", nil, "attachment file, repeatable")

	rmCmd := &cobra.Command{
		Use:   "rm <topicId> <forumNo>",
		Short: "Delete your topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topicId", args[0])
			if err != nil {
				return err
			}
			forumNo, err := parseID("forumNo", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				if err := a.Forum.DeleteTopic(ctx, topicID, forumNo); err != nil {
					return err
				}
				return message(cmd, code.MsgOperationDone.Msg())
			})
		},
	}

	attachmentCmd := &cobra.Command{
		Use:   "attachment <topicId> <attachmentId>",
		Short: "Download a topic attachment into the configured storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topicId", args[0])
			if err != nil {
				return err
			}
			attID, err := parseID("attachmentId", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				t, err := a.Forum.LoadTopic(ctx, topicID)
				if err != nil {
					return err
				}
				for _, att := range t.Attachments {
					if att.ID == attID {
						loc, err := a.Forum.DownloadAttachment(ctx, att, t.ForumNo)
						if err != nil {
							return err
						}
						return message(cmd, loc)
					}
				}
				return code.ErrorInvalidParams.WithDetails(fmt.Sprintf("attachment %d not found on topic %d", attID, topicID))
			})
		},
	}

	forumCmd.AddCommand(infoCmd, topicsCmd, topicCmd, postCmd, rmCmd, attachmentCmd)
	rootCmd.AddCommand(forumCmd)
}
