package main

import (
	"fmt"

	"github.com/fwojciec/smartscrape"
)

// Run executes the secrets set command.
func (c *SecretsSetCmd) Run(deps *Dependencies) error {
	if err := deps.Keyring.Set(c.Key, c.Value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Stored %s in keyring service %q\n", c.Key, deps.Keyring.Service())
	return nil
}

// Run executes the secrets get command.
func (c *SecretsGetCmd) Run(deps *Dependencies) error {
	v, err := deps.Keyring.Lookup(deps.Ctx, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, v)
	return nil
}

// Run executes the secrets delete command.
func (c *SecretsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Keyring.Delete(c.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.Key)
	return nil
}
