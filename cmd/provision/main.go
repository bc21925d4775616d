// Command provision creates the first admin account. It is the documented
// first-run step; the server itself never inserts default credentials.
//
//	go run ./cmd/provision -username admin -password <secret>
package main

import (
	"flag"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/pkg/database"

	"github.com/sirupsen/logrus"
)

func main() {
	username := flag.String("username", "admin", "username for the admin account")
	password := flag.String("password", "", "password for the admin account (required)")
	flag.Parse()

	if *password == "" {
		logrus.Fatal("-password is required")
	}
	if len(*password) < 6 {
		logrus.Fatal("password must be at least 6 characters")
	}

	cfg := config.Load()
	db := database.Connect(cfg.Database)
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.User{}); err != nil {
		logrus.WithError(err).Fatal("auto migration failed")
	}

	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername(*username); err == nil {
		logrus.Fatalf("user %q already exists, nothing to do", *username)
	}

	admin := &model.User{
		Username: *username,
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword(*password); err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	if err := userRepo.Create(admin); err != nil {
		logrus.WithError(err).Fatal("failed to create admin user")
	}

	logrus.Infof("admin user %q created (id %d)", admin.Username, admin.ID)
}
