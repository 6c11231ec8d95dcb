package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/tui"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a candidate or company account",
	Run: func(cmd *cobra.Command, _ []string) {
		register(cmd)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token",
	Run: func(cmd *cobra.Command, _ []string) {
		login(cmd)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Run: func(_ *cobra.Command, _ []string) {
		a := bootstrap()
		defer a.shutdown()

		if err := a.api.Logout(context.Background()); err != nil {
			a.logger.Fatal("logging out", zap.Error(err))
		}
		fmt.Println("You are logged out.")
	},
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("role", string(ravyz.RoleCandidate), "account role: candidate or company")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.MarkFlagRequired("email")
}

func register(cmd *cobra.Command) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	email, _ := cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")

	if !flows.ValidEmail(email) {
		a.logger.Fatal("invalid email", zap.String("email", email))
	}
	if !ravyz.Role(role).Valid() {
		a.logger.Fatal("invalid role", zap.String("role", role), zap.String("hint", "use candidate or company"))
	}

	prompter := tui.NewTerminal()
	password, err := askPassword(prompter, true)
	if err != nil {
		a.logger.Fatal("reading password", zap.Error(err))
	}

	req := ravyz.RegisterRequest{Email: email, Password: password, Role: ravyz.Role(role)}
	if _, err := a.api.Register(ctx, req); err != nil {
		a.logger.Fatal("registering account", zap.Error(err))
	}

	if _, err := a.api.Login(ctx, ravyz.Credentials{Email: email, Password: password}); err != nil {
		a.logger.Fatal("logging in after registration", zap.Error(err))
	}
	fmt.Printf("Account %s created, you are logged in as %s.\n", email, role)
}

func login(cmd *cobra.Command) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	email, _ := cmd.Flags().GetString("email")
	if !flows.ValidEmail(email) {
		a.logger.Fatal("invalid email", zap.String("email", email))
	}

	password, err := askPassword(tui.NewTerminal(), false)
	if err != nil {
		a.logger.Fatal("reading password", zap.Error(err))
	}

	token, err := a.api.Login(ctx, ravyz.Credentials{Email: email, Password: password})
	if err != nil {
		a.logger.Fatal("logging in", zap.Error(err))
	}

	fmt.Println("Logged in as", email)
	if expiresAt, ok := ravyz.TokenExpiry(token); ok {
		fmt.Printf("The session is valid until %s.\n", expiresAt.Local().Format(time.RFC1123))
	}
}

func askPassword(p tui.Prompter, confirm bool) (string, error) {
	password, err := p.Secret("Password")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("password is empty")
	}
	if !confirm {
		return password, nil
	}

	again, err := p.Secret("Confirm password")
	if err != nil {
		return "", err
	}
	if again != password {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
