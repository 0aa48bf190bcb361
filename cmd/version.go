package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/killallgit/rewise-api/pkg/config"
	"github.com/spf13/cobra"
)

// Build variables - these will be set during build time using ldflags
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
	OS        = runtime.GOOS
	Arch      = runtime.GOARCH
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and upstream information",
	Long: `Display the ReWise API build and the upstreams it is configured to use.

Besides the version, commit and runtime, this prints the iTunes Search
base URL, the feed fetch limits and the feed cache TTL as resolved from
./config/settings.yaml and REWISE_* environment variables.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", Version)
		return nil
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	writeVersion(out, cfg)
	return nil
}

func writeVersion(out io.Writer, cfg *config.Config) {
	rule := strings.Repeat("-", 48)
	fmt.Fprintf(out, "ReWise API v%s (%s, built %s)\n", Version, GitCommit, BuildTime)
	fmt.Fprintf(out, "%s %s/%s\n", GoVersion, OS, Arch)
	fmt.Fprintln(out, rule)

	fmt.Fprintf(out, "%-16s%s/search\n", "iTunes Search:", strings.TrimRight(cfg.ITunes.BaseURL, "/"))
	fmt.Fprintf(out, "%-16s%d req/min, timeout %s\n", "iTunes pacing:", cfg.ITunes.RequestsPerMinute, cfg.ITunes.Timeout)
	fmt.Fprintf(out, "%-16smax %d episodes, timeout %s\n", "Feed fetch:", cfg.Feeds.MaxEpisodes, cfg.Feeds.Timeout)
	fmt.Fprintf(out, "%-16s%s\n", "Feed cache TTL:", cfg.Cache.FeedTTL)
	fmt.Fprintf(out, "%-16s%s:%d\n", "Listen address:", cfg.Server.Host, cfg.Server.Port)

	fmt.Fprintln(out, rule)
}
