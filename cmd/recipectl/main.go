package main

import (
	"os"
)

func main() {
	root := newRootCommand()
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedUsersCommand())
	root.AddCommand(newSeedRecipesCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
