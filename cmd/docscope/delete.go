package main

import (
	"fmt"

	"github.com/docscope/docscope"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	project, err := deps.Projects.FindProjectByName(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docscope.ErrorMessage(err))
		return err
	}

	if !c.Force {
		fmt.Fprintf(deps.Stdout, "This will delete project %q and its saved selection. Re-run with --force to confirm.\n", c.Name)
		return nil
	}

	if err := deps.Projects.DeleteProject(deps.Ctx, project.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docscope.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted project %q.\n", c.Name)
	return nil
}
