package main

import (
	"context"
	"fmt"
)

// remind runs one reminder check, for schedulers that prefer a command to the http trigger.
func (cli *commandLine) remind() error {
	res, err := cli.checker.Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s %s: %d reminder(s) sent\n", res.Day, res.Time, res.Sent)
	return nil
}
