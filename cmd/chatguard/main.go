// Command chatguard runs single pipeline stages from the shell
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(newApp(os.Stdin, os.Stdout)).Execute(); err != nil {
		os.Exit(1)
	}
}
