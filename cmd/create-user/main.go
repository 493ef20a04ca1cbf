package main

import (
	"flag"
	"log"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/pkg/database"

	"github.com/joho/godotenv"
)

// Small ops tool: create an account without going through the HTTP API.
func main() {
	name := flag.String("name", "", "user name")
	mobile := flag.String("mobile", "", "mobile number (login identity)")
	password := flag.String("password", "", "password")
	flag.Parse()

	if *name == "" || *mobile == "" || *password == "" {
		log.Fatal("usage: create-user -name <name> -mobile <mobile> -password <password>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var existing model.User
	if err := db.Where("mobile = ?", *mobile).First(&existing).Error; err == nil {
		log.Fatalf("User with mobile %s already exists", *mobile)
	}

	user := &model.User{
		Name:   *name,
		Mobile: *mobile,
	}
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("User %s (%s) created with id %s", user.Name, user.Mobile, user.ID)
}
