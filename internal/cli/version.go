package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionServer bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Shows the slimctl version. With --server the configured media server
is queried for its version as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var serverVersion string
		if versionServer {
			v, err := connect().Version(context.Background())
			if err != nil {
				return fmt.Errorf("failed to query server version: %w", err)
			}
			serverVersion = v
		}

		if JSONOutput() {
			info := map[string]string{
				"version":    Version,
				"commit":     Commit,
				"build_date": BuildDate,
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
			}
			if serverVersion != "" {
				info["server_version"] = serverVersion
			}
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("slimctl %s\n", Version)
		if serverVersion != "" {
			fmt.Printf("server %s\n", serverVersion)
		}
		if Verbose() {
			fmt.Printf("  commit:     %s\n", Commit)
			fmt.Printf("  built:      %s\n", BuildDate)
			fmt.Printf("  go version: %s\n", runtime.Version())
			fmt.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionServer, "server", false, "Also query the server's version")
	rootCmd.AddCommand(versionCmd)
}
