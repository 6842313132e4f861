// Command token prints a bearer token for a user id, signed with JWT_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	httpin "salesorder/internal/adapters/in/http"
	"salesorder/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	userID := flag.String("user", "", "user id (uuid) to put in the sub claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	id, err := kernel.UUIDFromString(*userID)
	if err != nil {
		log.Fatalf("Invalid -user: %v", err)
	}

	auth, err := httpin.NewAuthenticator([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatal(err)
	}

	token, err := auth.Issue(id, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
