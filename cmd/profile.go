package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect the logged in account",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		showProfile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)

	profileShowCmd.Flags().Bool("synergy", false, "also print company synergy of the stored culture profile")
}

func showProfile(cmd *cobra.Command) {
	a := bootstrap()
	defer a.shutdown()

	profile, err := a.api.GetCandidate(context.Background())
	if err != nil {
		var apiErr *ravyz.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusNotFound) {
			fmt.Println("This account has no candidate profile; company accounts edit their data in `ravyz run`.")
			return
		}
		a.logger.Fatal("getting candidate profile", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		a.logger.Fatal("encoding profile", zap.Error(err))
	}
	fmt.Println(string(pretty))

	if withSynergy, _ := cmd.Flags().GetBool("synergy"); withSynergy && len(profile.Culture) > 0 {
		culture := make(catalog.Profile, len(profile.Culture))
		for dim, v := range profile.Culture {
			culture[catalog.Dimension(dim)] = v
		}

		fmt.Println()
		for _, s := range scoring.CompanySynergies(catalog.Companies, culture, nil) {
			fmt.Printf("%-4s %-20s %3d%%\n", s.Company.ID, s.Company.Name, s.Score)
		}
	}
}
