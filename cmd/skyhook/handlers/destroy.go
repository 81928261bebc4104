package handlers

import (
	"fmt"
	"strings"

	"github.com/skyhook-sh/skyhook/internal/state"
	"github.com/skyhook-sh/skyhook/internal/subnet"
)

// Function variable for dependency injection in tests.
var confirmDestroy = defaultConfirmDestroy

// Destroy releases the project's subnet allocations and deletes its deployment
// snapshot, fully resetting its planning history. The project configuration
// file itself is left in place.
func Destroy(paths Paths, project string, force bool) error {
	if !force {
		ok, err := confirmDestroy(project)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	alloc, err := subnet.Open(paths.Subnets)
	if err != nil {
		return err
	}
	released, err := alloc.Release(project)
	if err != nil {
		return err
	}

	if err := state.NewStore(paths.StateDir).Delete(project); err != nil {
		return err
	}

	if released {
		fmt.Printf("Released subnet allocations for %s\n", project)
	}
	fmt.Printf("Destroyed planning state for project %s\n", project)
	return nil
}

// defaultConfirmDestroy prompts for confirmation via stdin.
func defaultConfirmDestroy(project string) (bool, error) {
	fmt.Printf("This resets all planning state for project %s.\n", project)
	fmt.Print("Continue? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
