package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/folio/cmd"
)

func main() {
	cmd.Execute()
}
