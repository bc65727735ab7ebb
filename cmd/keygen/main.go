package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnavshah/study-planner-go/pkg/auth"
	"github.com/arnavshah/study-planner-go/pkg/config"
)

func main() {
	config.LoadEnvFile()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	userID := os.Args[1]
	if strings.Contains(userID, ".") {
		fmt.Println("Error: userID must not contain '.'")
		os.Exit(1)
	}

	secret := os.Getenv("API_MASTER_SECRET")
	if secret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	a := auth.New(&config.AuthConfig{APIMasterSecret: secret})
	fmt.Printf("Generated Key for %s:\n%s\n", userID, a.GenerateHMACKey(userID))
}
