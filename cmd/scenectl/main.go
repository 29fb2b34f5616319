package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/scene3d"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	config scene3d.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scenectl",
	Short: "Build and inspect 3D scenes",
	Long: `scenectl builds transform hierarchies and geometries, computes their
derived data (normals, tangents, bounding volumes) and exports the result
as glTF or as a YAML snapshot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = scene3d.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if verbose {
			config.Logging.Level = zapcore.DebugLevel.String()
		}

		logger, err = config.Logger()
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scenectl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "scenectl", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scene.yaml", "Scene configuration file")

	demoCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the scene as glTF (.glb for binary, .gltf for JSON)")
	demoCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write a YAML snapshot of the scene")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
