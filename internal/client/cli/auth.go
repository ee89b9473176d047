package cli

import (
	"context"
	"os"

	"github.com/avasiliev/taskkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. On success it prints "Registered!" and returns nil. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Registered!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the API client holds the access token and the prompt shows the
// email. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.email = email
	printlnFn("Logged in!")
	return nil
}

// Whoami asks the server which identity the current token carries.
func (a *App) Whoami(ctx context.Context) error {
	identity, err := a.api.Status(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("id:", identity.ID, "email:", identity.Email)
	return nil
}

// Logout drops the held token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.email = ""
	printlnFn("Logged out")
	return nil
}
