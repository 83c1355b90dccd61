package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/audit"
	"github.com/Zachkp/folio/internal/feed"
)

var (
	checkBaseURL     string
	checkConcurrency int
	checkTimeout     time.Duration
)

var errCheckFailed = errors.New("content check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the content store for broken feeds and posts",
	Long: `check loads projects.json, blogs.json and every post the blog feed lists,
reporting anything the page would fail to render or replace with a fallback.
By default the site directory is read; with --base-url a running site is
checked over HTTP instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if checkTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, checkTimeout)
			defer cancel()
		}

		var src feed.Source = feed.NewFSSource(os.DirFS(appConfig.SiteDir))
		if checkBaseURL != "" {
			base := checkBaseURL
			if !strings.HasSuffix(base, "/") {
				base += "/"
			}
			httpSrc, err := feed.NewHTTPSource(base, nil)
			if err != nil {
				return err
			}
			src = httpSrc
		}

		report, err := audit.Run(ctx, src, audit.Options{
			Images:      appConfig.Images(),
			Concurrency: checkConcurrency,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range report.Findings {
			fmt.Fprintln(out, f)
		}
		fmt.Fprintf(out, "%d projects, %d posts, %d findings\n", report.Projects, report.Posts, len(report.Findings))
		if report.Failed() {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkBaseURL, "base-url", "", "check a running site instead of the site directory")
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", audit.DefaultConcurrency, "posts fetched in parallel")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(checkCmd)
}
