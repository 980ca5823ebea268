package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress bars and non-essential output")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "30s", "Per-page fetch timeout")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Extra request header for static fetches (e.g., -H \"Cookie: a=b\")")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (optional)")
	cmd.PersistentFlags().StringP("mode", "m", "", "Fetcher: auto, static, or browser")
	cmd.PersistentFlags().IntP("concurrency", "c", 0, "Maximum pages fetched in parallel")
	cmd.PersistentFlags().String("state-dir", "", "Directory holding root_url.txt, the selection log, and the output")
	cmd.PersistentFlags().StringP("output", "o", "", "Output file name for the concatenated page text")
	cmd.PersistentFlags().String("format", "", "Output format: text or markdown")
	cmd.PersistentFlags().Bool("no-auto-replay", false, "In resume mode, wait for 'apply' instead of replaying saved selections automatically")
	cmd.PersistentFlags().Bool("visible", false, "Show the browser window instead of running headless")
}
