package cli

import (
	"context"
	"errors"

	"github.com/genius-wizard-dev/storefront/internal/client/storefront"
	"github.com/genius-wizard-dev/storefront/internal/common"
)

// getSimpleText and getPassword are swapped out in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyInput = errors.New("input must not be empty")

func (a *App) prompt(label string) (string, error) {
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errEmptyInput
	}
	return v, nil
}

// Register creates an account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.svc.Auth.Register(ctx, storefront.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	a.println("Account created, you can log in now.")
	return nil
}

// Login authenticates and stores the token.
func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.svc.Auth.Login(ctx, username, string(password)); err != nil {
		a.log.Info(ctx, "login failed", "user", username, "error", err)
		return err
	}

	a.setSession(username, true)
	a.printf("Logged in as %s.\n", username)
	return nil
}

// Logout ends the session locally even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.svc.Auth.Logout(ctx)
	a.setSession("", false)
	if err != nil {
		a.log.Warn(ctx, "logout call failed", "error", err)
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.svc.Profile.GetProfile(ctx)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}
	a.printf("%s <%s>\n", p.Username, p.Email)
	return nil
}
