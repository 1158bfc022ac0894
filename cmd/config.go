package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dilrevx/fix-compile/pkg/config"
)

var configDeleteYes bool

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persisted configuration",
		Long: `Read and write the user config file. Values set here become the
defaults for every run; command-line flags still win over them.`,
	}

	setCmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Example: `  fix-compile config set provider openai
  fix-compile config set retry_ceiling 5`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}

	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE:  runConfigList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Reset a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigDelete,
	}
	deleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Skip confirmation")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file and log directory paths",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	cmd.AddCommand(setCmd, getCmd, listCmd, deleteCmd, pathCmd)
	return cmd
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load(false)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if _, err := cfg.Save(); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Configuration saved: %s = %s", key, value))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(false)
	if err != nil {
		return err
	}
	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", args[0], value)
	return nil
}

func runConfigList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(false)
	if err != nil {
		return err
	}

	for _, key := range config.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s %s\n", key, value)
	}
	fmt.Println("\nUse 'config get KEY' to retrieve specific values")
	return nil
}

func runConfigDelete(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !configDeleteYes {
		fmt.Printf("Reset configuration key %q to its default? [y/N]: ", key)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			printWarning("Cancelled")
			return nil
		}
	}

	cfg, err := config.Load(false)
	if err != nil {
		return err
	}
	if err := cfg.Reset(key); err != nil {
		return err
	}
	if _, err := cfg.Save(); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Configuration reset: %s", key))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(false)
	if err != nil {
		return err
	}

	fmt.Printf("Config file:   %s\n", path)
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	return nil
}
