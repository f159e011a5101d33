package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	builderApp "storefront/internal/app"
	"storefront/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

var version = "0.1.0"

var configOpts config.Options

var rootCmd = &cobra.Command{
	Use:   "storefront-builder",
	Short: "Visual page builder for storefront pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesktop()
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the builder to AI agents over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return builderApp.ServeMCP(configOpts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storefront-builder %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configOpts.File, "config", "", "YAML config file (default $STOREFRONT_CONFIG or <data dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&configOpts.EnvFile, "env-file", "", "dotenv file (default .env when present)")
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func runDesktop() error {
	app := builderApp.New(configOpts)

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	return wails.Run(&options.App{
		Title:     "Storefront Builder",
		Width:     1440,
		Height:    900,
		MinWidth:  1024,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 250, G: 250, B: 250, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			About: &mac.AboutInfo{
				Title:   "Storefront Builder",
				Message: "Compose storefront pages from reusable sections",
			},
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
