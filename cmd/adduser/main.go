// cmd/adduser/main.go
// Creates or updates a user in the database. This is also the way token
// balances are replenished and admin rights granted.
//
// Usage:
//
//	go run ./cmd/adduser -name alice -password testing -token 10
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"techlinter/config"
	bundb "techlinter/db"
	"techlinter/models"
)

func main() {
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "plain-text password (required)")
	token := flag.Int64("token", 0, "analysis token balance")
	admin := flag.Bool("admin", false, "exempt the user from token debits")
	flag.Parse()

	if *name == "" || *password == "" {
		log.Fatal("both -name and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	user := &models.User{
		Name:     *name,
		Password: string(hash),
		Token:    *token,
		IsAdmin:  *admin,
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (name) DO UPDATE SET password = EXCLUDED.password, token = EXCLUDED.token, is_admin = EXCLUDED.is_admin").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", *name)
}
