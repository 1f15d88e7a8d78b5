package main

import (
	"encoding/json"
	"fmt"

	docscopehttp "github.com/docscope/docscope/http"
)

// Run executes the state command.
func (c *StateCmd) Run(deps *Dependencies) error {
	client := docscopehttp.NewClient(c.Server)

	set, err := client.LoadState(deps.Ctx)
	if err != nil {
		return err
	}

	if c.Globs {
		include, exclude := set.Globs()
		for _, g := range include {
			fmt.Fprintf(deps.Stdout, "+ %s\n", g)
		}
		for _, g := range exclude {
			fmt.Fprintf(deps.Stdout, "- %s\n", g)
		}
		return nil
	}

	out, err := json.MarshalIndent(set.Payload(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
