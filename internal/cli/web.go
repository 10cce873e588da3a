package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/browser"
)

var webPrint bool

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Open the server web interface",
	Long: `Open the Lyrion web interface in your default browser.

The server serves its web UI on the same host and port slimctl talks
to, so this needs no extra configuration.`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().BoolVar(&webPrint, "print", false, "Print the URL instead of opening it")
	rootCmd.AddCommand(webCmd)
}

func runWeb(cmd *cobra.Command, args []string) error {
	srv := connect()
	url := fmt.Sprintf("http://%s/", srv.Addr())

	if webPrint {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]string{"url": url})
		}
		fmt.Println(url)
		return nil
	}

	if err := browser.Open(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "opened",
			"url":    url,
		})
	} else {
		fmt.Printf("🌐 Opened %s\n", url)
	}

	return nil
}
