package main

import (
	"context"
	"fmt"

	"github.com/mocnepiwko/uni-diary/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, role, pwd string) error {
	usr, err := cli.usrSvc.AddOrUpdate(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "saved %s <%s> as %s\n", usr.Name, usr.Email, usr.Role)
	return nil
}
