package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lari-oliv/olive-beauty/logger"
	"github.com/Lari-oliv/olive-beauty/repository"
	"github.com/Lari-oliv/olive-beauty/services"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

// createAdminCmd upserts an ADMIN account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote an admin account",
	Long: `Create an admin account, or promote and reset the password of the
account that already uses the email.

Examples:
  olive-beauty create-admin --email admin@olive.com --password s3cret --name "Admin"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "Display name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func validateAdminFlags(email, password, name string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("--email must be a valid email address")
	}
	if len(password) < 6 || len(password) > 72 {
		return fmt.Errorf("--password must be between 6 and 72 characters")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("--name must not be empty")
	}
	return nil
}

func runCreateAdmin(ctx context.Context) error {
	if err := validateAdminFlags(adminEmail, adminPassword, adminName); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, db, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := services.NewAuthService(
		repository.NewGormUserRepository(db.DB),
		services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		logger.Log,
	)
	user, err := auth.CreateAdmin(ctx, adminName, adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	success("Admin %s ready (id %s)", user.Email, user.ID)
	return nil
}
