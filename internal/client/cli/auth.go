package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkrasnovs/filestash/internal/common"
)

// Register prompts for a username and password and creates an account.
// On success the client is left authenticated.
func (a *App) Register(ctx context.Context) error {

	userName, err := getSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, userName, password); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	a.userName = userName
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {

	userName, err := getSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, password); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	a.userName = userName
	fmt.Println("Success!")
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
