package main

import (
	"cartsource/pkg/infrastructure/config"
	"cartsource/pkg/interfaces/cli/commands"
)

func main() {
	config.LoadEnv()
	commands.Execute()
}
