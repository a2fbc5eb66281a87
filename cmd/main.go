package main

import (
	"log"
	"os"

	"github.com/Sqwerrr/Shutdown-Timer/internal/commands"
)

var (
	version = "1.0.0"
	commit  = ""
)

func main() {
	err := commands.Execute(os.Args, commands.BuildArgs{
		Version: version,
		Commit:  commit,
	})
	if err != nil {
		log.Fatal(err)
	}
}
