package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ryanlidster/slimctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing slimctl configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  server.host            Server hostname or IP
  server.port            Server HTTP port
  server.timeout_ms      Request timeout in milliseconds
  defaults.player        Default player name or reference
  defaults.volume_step   Step for volume nudges (0-100)
  defaults.skip_seconds  Jump size for forward and rewind
  tail.interval          Tail poll interval in milliseconds
  tail.format            Custom tail event template
  tui.theme              Color theme (latte, frappe, macchiato, mocha)

Examples:
  slimctl config set server.host 192.168.1.10
  slimctl config set defaults.player Kitchen`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetPlayerCmd = &cobra.Command{
	Use:   "set-player",
	Short: "Interactively select the default player",
	Long:  `Shows a picker to select the default player.`,
	RunE:  runConfigSetPlayer,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	Long:  `Print the path of the configuration file in use.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetPlayerCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'slimctl config init' first", configPath)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	// Open editor
	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config
	defaultCfg := config.Default()

	// Write to file
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# Slimctl Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/ryanlidster/slimctl")
	_, _ = fmt.Fprintln(f, "")

	// Write config
	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(defaultCfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Printf("Created config file: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Point server.host and server.port at your Lyrion server")
		fmt.Println("  2. Run 'slimctl players' to check the connection")
	}

	return nil
}

// getConfigPath returns the file the config commands operate on: the
// --config flag, an existing file from the search path, or ~/.slimrc
// for a fresh install.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}

	if path := config.FindFile(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".slimrc"
	}

	return filepath.Join(home, ".slimrc")
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	_, err := os.Stat(configPath)
	exists := err == nil

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"path":   configPath,
			"exists": exists,
		})
	}

	if exists {
		fmt.Println(configPath)
	} else {
		fmt.Printf("%s (not created yet, run 'slimctl config init')\n", configPath)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'slimctl config init' first", configPath)
	}

	// Read the current config file as raw TOML so unknown keys survive
	// the round trip.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var rawConfig map[string]interface{}
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Parse the key (e.g., "defaults.player" -> ["defaults", "player"])
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format. Use 'section.key' (e.g., defaults.player)")
	}

	section, field := parts[0], parts[1]

	// Get or create the section
	sectionMap, ok := rawConfig[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		rawConfig[section] = sectionMap
	}

	// Convert value to appropriate type based on field
	var typedValue interface{}
	switch key {
	case "server.port", "server.timeout_ms", "defaults.volume_step", "defaults.skip_seconds",
		"tail.interval", "tui.refresh_interval":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer for %s", key)
		}
		typedValue = i
	case "tail.timestamps", "tail.plain", "log.verbose":
		typedValue = value == "true" || value == "1" || value == "yes"
	default:
		typedValue = value
	}

	sectionMap[field] = typedValue

	// Write back to file
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Write header comment
	_, _ = fmt.Fprintln(f, "# Slimctl Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/ryanlidster/slimctl")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Printf("Set %s = %s\n", key, value)
	}

	return nil
}

func runConfigSetPlayer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	srv := connect()
	infos, err := srv.Players(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	if len(infos) == 0 {
		return fmt.Errorf("no players found. Make sure your players are attached to the server")
	}

	// Build options for picker
	var options []huh.Option[string]
	for _, info := range infos {
		label := info.Name
		if info.Model != "" {
			label = fmt.Sprintf("%s (%s)", info.Name, info.Model)
		}
		if info.Connected {
			label += " [connected]"
		}
		options = append(options, huh.NewOption(label, info.Ref))
	}

	var selectedRef string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select default player").
				Description("This player will be used when --player is not given").
				Options(options...).
				Value(&selectedRef),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	// The reference survives renames, so store it rather than the name.
	return runConfigSet(cmd, []string{"defaults.player", selectedRef})
}
