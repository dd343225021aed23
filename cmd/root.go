package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zovs/ironclaw/internal/fetch"
	"github.com/zovs/ironclaw/internal/gateway"
	"github.com/zovs/ironclaw/internal/output"
	"github.com/zovs/ironclaw/internal/policy"
	"github.com/zovs/ironclaw/internal/shellexec"
	"github.com/zovs/ironclaw/internal/store"
)

var (
	dataDir       string
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	headers       []string
	authToken     string
	awsProfile    string
	logFile       string
	debug         bool
)

var IronClawVersion = "dev"

const appDirName = "ZovsIronClaw"

var rootCmd = &cobra.Command{
	Use:     "ironclaw",
	Short:   "IronClaw is the backend command gateway of the ZovsIronClaw desktop app",
	Version: IronClawVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.InitLogger(debug)
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
				os.Exit(1)
			}
			output.SetLogOutput(f)
		}
	},
}

func Execute() {
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newExistsCmd())
	rootCmd.AddCommand(newSoulCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newBrainCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Application data directory (defaults to the per-user config dir)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")
	rootCmd.PersistentFlags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	rootCmd.PersistentFlags().StringVarP(&userAgent, "user-agent", "a", "", "User agent")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	rootCmd.PersistentFlags().StringVar(&proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringVar(&proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers (like 'Authorization: Basic dXNlcjpwYXNz'); can be specified multiple times")
	rootCmd.PersistentFlags().StringVar(&authToken, "auth-token", "", "Bearer token sent to HTTP origins")
	rootCmd.PersistentFlags().StringVar(&awsProfile, "aws-profile", "", "AWS shared-config profile for s3:// origins")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to a file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func dataRoot() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve data directory: %v", err)
	}
	return filepath.Join(base, appDirName), nil
}

func newGateway() (*gateway.Gateway, error) {
	root, err := dataRoot()
	if err != nil {
		return nil, err
	}
	pol, err := policy.Load(filepath.Join(root, "policy.yaml"))
	if err != nil {
		return nil, err
	}
	guard, err := shellexec.LoadGuardrail(filepath.Join(root, "guardrail.yaml"))
	if err != nil {
		return nil, err
	}
	client := fetch.NewClient(fetch.HTTPClientConfig{
		Timeout:       timeout,
		KATimeout:     kaTimeout,
		ProxyURL:      proxyURL,
		ProxyUsername: proxyUsername,
		ProxyPassword: proxyPassword,
		UserAgent:     userAgent,
		Headers:       parseHeaderArgs(headers),
	})
	if authToken != "" {
		client.SetHeader("Authorization", "Bearer "+authToken)
	}
	gw := gateway.New(pol, store.New(root), client, shellexec.New(guard))
	gw.AWSProfile = awsProfile
	return gw, nil
}

func parseHeaderArgs(headers []string) map[string]string {
	result := make(map[string]string)
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}
	return result
}
