// Command rbridgectl is the control-plane CLI for the RBridge core: it
// exposes the §6 control-plane surface (enable/disable TRILL, set local
// nickname, set tree root, install/evict a neighbour) as mutations against
// the bridge's on-disk YAML configuration, in the style of the teacher's
// own cmd/ package.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is the config file rbridgectl operates on unless
// overridden by --config.
const DefaultConfigPath = "rbridge.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rbridgectl",
	Short: "Control plane for a TRILL RBridge data-plane core",
	Long: `rbridgectl manages the on-disk configuration an RBridge loads at
startup: local identity, distribution-tree root, the initial neighbour set,
and per-port guest/VNI policy.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "lifecycle", Title: "Bridge Lifecycle"})
	rootCmd.AddGroup(&cobra.Group{ID: "topology", Title: "Neighbour Topology"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection"})

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to the bridge's rbridge.yaml")
}
