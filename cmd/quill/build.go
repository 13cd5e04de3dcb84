package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the site into the output directory",
	Long: `build reads every post under contentDir, renders the index, one page per
post, 404.html, feed.xml, sitemap.xml and robots.txt, and copies staticDir.
The output directory is emptied first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := quill.New(siteCfg)
		report, err := app.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts into %s in %s\n", report.Posts, app.Config.OutputDir, report.Duration)
		return nil
	},
}
