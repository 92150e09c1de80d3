package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage resume projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project with a default document",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsRename,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project and all its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var projectsActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Mark a project as active",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsActivate,
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsRenameCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	projectsCmd.AddCommand(projectsActivateCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(_ *cobra.Command, _ []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	index, err := ed.projects.Index()
	if err != nil {
		return err
	}

	if len(index.Projects) == 0 {
		fmt.Println("No projects. Create one with 'projects create <name>'.")
		return nil
	}

	ed.printer.PrintProjects(index.Projects, index.ActiveProjectID)
	return nil
}

func runProjectsCreate(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	proj, err := ed.projects.Create(args[0], nil)
	if err != nil {
		return err
	}

	fmt.Printf("Created project %q (%s)\n", proj.Name, proj.ID)
	return nil
}

func runProjectsRename(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	if err := ed.projects.Rename(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("Renamed project %s to %q\n", args[0], args[1])
	return nil
}

func runProjectsDelete(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	if err := ed.projects.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted project %s\n", args[0])
	return nil
}

func runProjectsActivate(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	if err := ed.projects.SetActive(args[0]); err != nil {
		return err
	}

	fmt.Printf("Active project is now %s\n", args[0])
	return nil
}
