package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/seed"
)

const (
	passwordFlag     = "password"
	elevatedRoleFlag = "elevated-role"
	forceFlag        = "force"
)

func newSeedUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-users",
		Short: "Create the demo accounts alice, bob and admin",
		Args:  cobra.NoArgs,
		RunE:  runSeedUsers,
	}
	flags := cmd.Flags()
	flags.String(passwordFlag, "testpassword123", "password given to every demo account")
	flags.String(elevatedRoleFlag, "ROLE_ADMIN", "role granted to the admin account")
	return cmd
}

func runSeedUsers(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	db, closeDB, err := openDatabase(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	password, _ := cmd.Flags().GetString(passwordFlag)
	role, _ := cmd.Flags().GetString(elevatedRoleFlag)

	n, err := seed.Users(cmd.Context(), repository.NewUserStore(db), password, role)
	if err != nil {
		return err
	}
	log.Info("seeded users", zap.Int("created", n))
	return nil
}

func newSeedRecipesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-recipes",
		Short: "Load sample recipes owned by the demo accounts",
		Args:  cobra.NoArgs,
		RunE:  runSeedRecipes,
	}
	cmd.Flags().Bool(forceFlag, false, "seed even when recipes already exist")
	return cmd
}

func runSeedRecipes(cmd *cobra.Command, _ []string) error {
	log, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	db, closeDB, err := openDatabase(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	force, _ := cmd.Flags().GetBool(forceFlag)
	n, err := seed.Recipes(cmd.Context(), repository.NewRecipeStore(db), force)
	if err != nil {
		return err
	}
	log.Info("seeded recipes", zap.Int("created", n))
	return nil
}
