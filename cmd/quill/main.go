package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/quill"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	siteCfg quill.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - a static markdown blog generator built with Go and templ",
	Long: `quill turns a directory of markdown posts with YAML front-matter into a
static blog: an index of every post, newest first, one page per post, an RSS
feed and a sitemap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "new" || cmd.Name() == "version" {
			return nil
		}
		return initializeConfig(cmd)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./site.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.Bool("unsafe", false, "render raw HTML in posts without sanitizing it")
	pf.String("on-error", "abort", `what to do with malformed posts: "abort" or "skip"`)

	rootCmd.AddCommand(buildCmd, serveCmd, newCmd, versionCmd)
}

// configDefaults mirrors quill.SiteConfig defaults so that every key is known
// to viper and can be overridden from the environment.
var configDefaults = map[string]any{
	"name":               "Blog",
	"title":              "",
	"url":                "http://localhost:3000",
	"description":        "",
	"author":             "",
	"twitterHandle":      "",
	"twitterURL":         "",
	"githubURL":          "",
	"mainImage":          "",
	"siteType":           "website",
	"contentDir":         "content/posts",
	"outputDir":          "public",
	"staticDir":          "static",
	"addr":               ":3000",
	"stylesheets":        []string{},
	"onError":            "abort",
	"unsafe":             false,
	"hardWraps":          false,
	"markdownExtensions": []string{},
	"debug":              false,
	"maxImageWidth":      800,
	"jpegQuality":        80,
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := map[string]string{
		"debug":   "debug",
		"unsafe":  "unsafe",
		"onError": "on-error",
		"addr":    "addr",
	}
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	siteCfg = quill.SiteConfig{}
	if err := v.Unmarshal(&siteCfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" && siteCfg.Debug {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return nil
}
