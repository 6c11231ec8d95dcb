package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/router"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive RAVYZ screens",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("exclude-file", "e", "", "special file with dismissed opportunities. Default is unset.")
	runCmd.Flags().StringP("start", "s", string(router.Welcome), "screen to start from")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	a := bootstrap()
	defer a.shutdown()

	if path, _ := cmd.Flags().GetString("exclude-file"); path != "" {
		a.config.Matching.ExcludeFile = path
	}

	a.logger.Info("starting the ravyz front end",
		zap.String("version", version),
		zap.String("api_url", a.api.APIURL),
	)

	start := router.Screen(cmd.Flag("start").Value.String())

	r := router.New(a.routerDeps(ctx), &router.Session{ID: a.sessionID})
	if err := r.Run(ctx, start); err != nil {
		a.logger.Error("router stopped", zap.Error(err), zap.String("screen", string(r.Current())))
		fmt.Println("Something went wrong:", err)
	}
}
