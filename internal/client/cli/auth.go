package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/obelousov/pixelboard/internal/client/models"
	"github.com/obelousov/pixelboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, display name and password and creates a
// new account. The session is not touched: the user still has to sign in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignUp(ctx, email, password, name); err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	fmt.Println("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and signs in. The password is wiped before
// returning; failures are printed verbatim, they all carry display-ready
// messages.
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

	if err := a.session.SignIn(ctx, email, password); err != nil {
		log.Printf("Login failed: %s", err.Error())
		return err
	}

	log.Printf("Signed in as %s", a.session.Snapshot().User.Email)
	return nil
}

// Logout signs out and removes the local snapshot. Safe to call repeatedly.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

// ResetPassword is a stub for out-of-band credential recovery.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.ResetPassword(email); err != nil {
		fmt.Println(err.Error())
		return err
	}
	return nil
}

// Update prompts for a field (email, name or password) and applies a
// partial update to the signed-in account.
func (a *App) Update(ctx context.Context) error {
	field, err := getSimpleText(a.reader, "Field to update (email/name/password)", os.Stdout)
	if err != nil {
		return err
	}

	patch := &models.UserPatch{}

	switch field {
	case "email":
		value, err := getSimpleText(a.reader, "New email", os.Stdout)
		if err != nil {
			return err
		}
		patch.Email = &value
	case "name":
		value, err := getSimpleText(a.reader, "New display name", os.Stdout)
		if err != nil {
			return err
		}
		patch.Name = &value
	case "password":
		value, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(value)
		patch.Password = value
	default:
		fmt.Println("Unknown field:", field)
		return nil
	}

	if err := a.session.UpdateUser(ctx, patch); err != nil {
		log.Printf("Update failed: %s", err.Error())
		return err
	}

	fmt.Println("Updated.")
	return nil
}

// Whoami prints the current session state.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}

// Refresh re-reads the signed-in identity from the server, best effort.
func (a *App) Refresh(ctx context.Context) error {
	a.session.RefreshUser(ctx)
	return nil
}
