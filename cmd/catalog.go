package cmd

import (
	"context"
	"fmt"
	"io"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	var search string

	majorsCmd := &cobra.Command{
		Use:   "majors [--search query]",
		Short: "List majors // 专业列表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				majors, err := a.CatalogService.FetchMajors(ctx)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("search") {
					majors = a.CatalogService.SearchMajors(search)
				}
				return render(cmd, majors, func(w io.Writer) {
					for _, m := range majors {
						fmt.Fprintf(w, "%6d  %s\n", m.MajorNo, m.MajorName)
					}
				})
			})
		},
	}
	majorsCmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")

	coursesCmd := &cobra.Command{
		Use:   "courses <majorNo>",
		Short: "List the courses of a major // 课程列表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			majorNo, err := parseID("majorNo", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *internalApp.App) error {
				courses, err := a.CatalogService.FetchCourses(ctx, majorNo)
				if err != nil {
					return err
				}
				return render(cmd, courses, func(w io.Writer) {
					for _, c := range courses {
						fmt.Fprintf(w, "%6d  %s\n", c.CourseNo, c.CourseName)
					}
				})
			})
		},
	}

	rootCmd.AddCommand(majorsCmd, coursesCmd)
}
