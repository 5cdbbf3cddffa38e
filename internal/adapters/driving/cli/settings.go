package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change storage, document, audit and HTTP settings.

Settings live in ~/.juris/config.toml. A running 'juris serve' picks up
changes to the document size limit without restarting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long:  `Set a setting by its dotted key. Run 'juris settings keys' for the list.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Reset a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Storage.DataDir, "~/.juris/data"))
	cmd.Println()

	cmd.Println("[Blob]")
	cmd.Printf("  Backend: %s\n", settings.Blob.Backend.Description())
	switch settings.Blob.Backend {
	case domain.BlobBackendS3:
		cmd.Printf("  Bucket: %s\n", orDefault(settings.Blob.Bucket, "(not set)"))
		cmd.Printf("  Region: %s\n", orDefault(settings.Blob.Region, "(from environment)"))
		if settings.Blob.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", settings.Blob.Endpoint)
		}
		cmd.Printf("  Prefix: %s\n", settings.Blob.Prefix)
	default:
		cmd.Printf("  Dir: %s\n", orDefault(settings.Blob.Dir, "~/.juris/blobs"))
	}
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Max size: %d bytes\n", settings.Documents.MaxSizeBytes)
	cmd.Println()

	cmd.Println("[Audit]")
	if settings.Audit.NATSURL != "" {
		cmd.Printf("  NATS: %s\n", settings.Audit.NATSURL)
		cmd.Printf("  Subject prefix: %s\n", settings.Audit.SubjectPrefix)
	} else {
		cmd.Println("  NATS: disabled")
	}
	cmd.Println()

	cmd.Println("[HTTP]")
	cmd.Printf("  Addr: %s\n", settings.HTTP.Addr)
	if settings.HTTP.RateLimit > 0 {
		cmd.Printf("  Rate limit: %.1f req/s (burst %d)\n", settings.HTTP.RateLimit, settings.HTTP.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Reset %s to its default\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(strings.Join(settingsService.Keys(), "\n"))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
