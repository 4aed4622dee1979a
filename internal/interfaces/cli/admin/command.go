package admin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	adminUsecases "github.com/sahay-inc/sahay/internal/application/admin/usecases"
	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/infrastructure/auth"
	"github.com/sahay-inc/sahay/internal/infrastructure/config"
	"github.com/sahay-inc/sahay/internal/infrastructure/database"
	"github.com/sahay-inc/sahay/internal/infrastructure/repository"
	"github.com/sahay-inc/sahay/internal/shared/biztime"
	shareddb "github.com/sahay-inc/sahay/internal/shared/db"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

var (
	env   string
	alias string
	role  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative tools",
		Long:  `Administrative tools for account bootstrap and maintenance.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateOfficerCommand())

	return cmd
}

func newCreateOfficerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-officer",
		Short: "Create an officer account",
		Long: `Create a privileged account (asha, clinician, district_officer, state_officer,
national_admin). The password is read from the terminal, never from a flag,
so it stays out of the shell history.`,
		RunE: runCreateOfficer,
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Login alias for the new account (required)")
	cmd.Flags().StringVarP(&role, "role", "r", "", "Role to grant (required)")
	cmd.MarkFlagRequired("alias")
	cmd.MarkFlagRequired("role")

	return cmd
}

func runCreateOfficer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	password, err := promptPassword()
	if err != nil {
		return err
	}

	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	uc := adminUsecases.NewCreateOfficerUseCase(
		userRepo,
		profileRepo,
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		shareddb.NewTransactionManager(db),
		audit.NewAppender(auditRepo),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := uc.Execute(ctx, adminUsecases.CreateOfficerCommand{
		Alias:    alias,
		Role:     role,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create officer: %w", err)
	}

	fmt.Printf("\nOfficer account created:\n")
	fmt.Printf("  SID:   %s\n", result.UserSID)
	fmt.Printf("  Alias: %s\n", result.Alias)
	fmt.Printf("  Role:  %s\n", result.Role)

	return nil
}

// promptPassword reads the password twice from the terminal without echo.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("create-officer requires an interactive terminal for the password prompt")
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	password := strings.TrimSpace(string(first))
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	return password, nil
}
