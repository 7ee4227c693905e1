package main

import (
	"fmt"
	"os"
	"strings"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	case "init":
		initDb(os.Args[2:])
	case "clean":
		clean(os.Args[2:])
	case "backup":
		backup(os.Args[2:])
	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(os.Args[2], os.Args[3:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]

Commands:
  serve [--config <file>]     Run the blog server
  init [--config <file>]      Initialize a new empty database
  clean [--config <file>]     Remove the blog database
  backup [--config <file>]    Create a backup of the database
  restore <file> [--config <file>]
                              Restore the database from a backup
  version                     Print the version
  help                        Display this help message
`
	fmt.Println(helpText)
}
