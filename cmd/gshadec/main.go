package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"github.com/soypat/gshade/gshadeaux"
	"github.com/spf13/cobra"
)

type compileConfig struct {
	outputDir    string
	resourceRoot string
	textureDir   string
	sourceRoot   string
	manifest     string
	maxSize      int
	strict       bool
	verbose      bool
}

var config = &compileConfig{}

var rootCmd = &cobra.Command{
	Use:   "gshadec",
	Short: "gshadec compiles material node graphs to shading expressions",
}

var compileCmd = &cobra.Command{
	Use:   "compile <document.yaml>",
	Short: "Compile every material slot of a graph document and print the manifest as JSON",
	Example: `  # Compile into ./scene, textures are written to ./scene/Textures
  gshadec compile -o scene materials.yaml

  # Fail on any degraded expression
  gshadec compile --strict materials.yaml`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	compileCmd.Flags().StringVarP(&config.outputDir, "out", "o", ".", "Output directory of the exported scene")
	compileCmd.Flags().StringVar(&config.resourceRoot, "resource-root", "Meshes", "Prefix of texture file references in the manifest")
	compileCmd.Flags().StringVar(&config.textureDir, "texture-dir", "Textures", "Directory relative to the output directory textures are written to")
	compileCmd.Flags().StringVar(&config.sourceRoot, "source-root", "", "Directory \"//\" prefixed image paths are relative to (default: document directory)")
	compileCmd.Flags().StringVarP(&config.manifest, "manifest", "m", "", "Write the manifest to a file instead of stdout")
	compileCmd.Flags().IntVar(&config.maxSize, "max-texture-size", 0, "Downscale textures larger than this size, 0 for no limit")
	compileCmd.Flags().BoolVar(&config.strict, "strict", false, "Exit with an error if any expression was degraded")
	compileCmd.Flags().BoolVarP(&config.verbose, "verbose", "v", false, "Log progress")
	rootCmd.AddCommand(compileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCompile(stdout io.Writer, docPath string) error {
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	level := zerolog.InfoLevel
	if config.verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	zlog := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log := zerologr.New(&zlog).WithName("gshadec")

	doc, err := gshadeaux.LoadDocument(docPath)
	if err != nil {
		return err
	}
	sourceRoot := config.sourceRoot
	if sourceRoot == "" {
		sourceRoot = filepath.Dir(docPath)
	}
	m, err := gshadeaux.Export(doc, gshadeaux.ExportConfig{
		OutputDir:      config.outputDir,
		TextureDir:     config.textureDir,
		ResourceRoot:   config.resourceRoot,
		SourceRoot:     sourceRoot,
		MaxTextureSize: config.maxSize,
		Logger:         log,
	})
	if err != nil {
		return err
	}
	if config.manifest != "" {
		fp, err := os.Create(config.manifest)
		if err != nil {
			return err
		}
		defer fp.Close()
		stdout = fp
	}
	if err := m.WriteJSON(stdout); err != nil {
		return err
	}
	if config.strict && len(m.Diagnostics) > 0 {
		return fmt.Errorf("%d degraded expressions:\n%w", len(m.Diagnostics), m.Err())
	}
	return nil
}
