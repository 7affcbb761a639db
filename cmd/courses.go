package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/catalog"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		courses, err := sess.client.Courses(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(courses) == 0 {
			fmt.Fprintln(out, "No courses published yet.")
			return nil
		}

		fmt.Fprintf(out, "%-4s  %-40s  %-13s  %-20s  %s\n", "ID", "Title", "Difficulty", "Instructor", "Modules")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for _, c := range courses {
			fmt.Fprintf(out, "%-4d  %-40s  %-13s  %-20s  %d\n",
				c.ID, truncate(c.Title, 40), c.Difficulty, truncate(c.Instructor, 20), len(c.Modules))
		}
		return nil
	},
}

var courseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a course with its modules and quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		c, err := sess.client.Course(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n%s · %s\n\n%s\n\n", c.Title, c.Difficulty, c.Instructor, c.Description)
		fmt.Fprintln(out, "Modules")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for i, m := range c.Modules {
			fmt.Fprintf(out, "%2d. %s\n", i+1, m.Title)
		}

		fmt.Fprintln(out)
		quiz, err := catalog.FromQuiz(c.Quiz)
		switch {
		case errors.Is(err, catalog.ErrNoQuiz):
			fmt.Fprintln(out, catalog.NoQuizMessage)
		case err != nil:
			return fmt.Errorf("course quiz: %w", err)
		default:
			fmt.Fprintf(out, "Quiz: %s (%d questions)\n", quiz.Title, quiz.Set.Len())
		}
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func init() {
	coursesCmd.AddCommand(courseShowCmd)
}
