package cli

import (
	"context"
	"os"

	"github.com/avasiliev/taskkeeper/internal/common"
)

// Profile updates the caller's own email and/or password. Empty answers
// leave the corresponding field unchanged.
func (a *App) Profile(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var emailPtr, passwordPtr *string
	if email != "" {
		emailPtr = &email
	}
	if len(password) > 0 {
		p := string(password)
		passwordPtr = &p
	}
	if emailPtr == nil && passwordPtr == nil {
		printlnFn("Nothing to change")
		return nil
	}

	u, err := a.api.UpdateProfile(ctx, emailPtr, passwordPtr)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if emailPtr != nil {
		a.email = u.Email
	}
	printlnFn("Profile updated")
	return nil
}

// DeleteAccount removes the caller's account after an explicit confirmation.
// The server deletes owned tasks along with the account.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete account and all its tasks? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.api.DeleteAccount(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.email = ""
	printlnFn("Account deleted")
	return nil
}
