package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trillbridge/rbridge/internal/config"
)

var enableCmd = &cobra.Command{
	Use:     "enable",
	Short:   "Enable TRILL on this bridge (requires STP already stopped)",
	GroupID: "lifecycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(func(cfg *config.Config) error {
			cfg.Bridge.Enabled = true
			fmt.Printf("bridge %q marked enabled\n", cfg.Bridge.Name)
			return nil
		})
	},
}

var disableCmd = &cobra.Command{
	Use:     "disable",
	Short:   "Disable TRILL on this bridge and evict every neighbour",
	GroupID: "lifecycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(func(cfg *config.Config) error {
			cfg.Bridge.Enabled = false
			cfg.Bridge.Neighbors = nil
			fmt.Printf("bridge %q marked disabled, neighbour table cleared\n", cfg.Bridge.Name)
			return nil
		})
	},
}

var setLocalNickCmd = &cobra.Command{
	Use:     "set-local-nick <nickname>",
	Short:   "Set this bridge's own RBridge nickname",
	Args:    cobra.ExactArgs(1),
	GroupID: "lifecycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		nick, err := parseNickArg(args[0])
		if err != nil {
			return err
		}
		return withConfig(func(cfg *config.Config) error {
			cfg.Bridge.LocalNickname = nick
			return nil
		})
	},
}

var setTreeRootCmd = &cobra.Command{
	Use:     "set-tree-root <nickname>",
	Short:   "Set the nominated distribution-tree root nickname",
	Args:    cobra.ExactArgs(1),
	GroupID: "lifecycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		nick, err := parseNickArg(args[0])
		if err != nil {
			return err
		}
		return withConfig(func(cfg *config.Config) error {
			if nick == cfg.Bridge.TreeRoot {
				fmt.Println("tree root unchanged")
				return nil
			}
			cfg.Bridge.TreeRoot = nick
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(enableCmd, disableCmd, setLocalNickCmd, setTreeRootCmd)
}
