package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/infra/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cfg := &config.AppConfig{}

	root := &cobra.Command{
		Use:          "checkout",
		Short:        "Paysera checkout service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := config.LoadEnvFiles(envFile); err != nil {
				return err
			}

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			*cfg = *loaded

			logger.InitGlobalLogger(logger.Options{
				Level:       cfg.LogLevel,
				Environment: cfg.Environment,
				Version:     cfg.Version,
			})
			return nil
		},
	}
	root.PersistentFlags().String("env-file", ".env", "Environment file to load when present")

	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newProjectCmd(cfg))

	return root
}

func newProjectCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage Paysera project credentials",
	}

	addCmd := &cobra.Command{
		Use:   "add <name> <project-id> <password>",
		Short: "Add a project or replace its credentials",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[1])
			}

			store, err := config.NewProjectStore(cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer store.Close()

			project := config.Project{Name: args[0], ProjectID: projectID, Password: args[2]}
			if err := store.SaveProject(cmd.Context(), project); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project %s saved\n", project.Name)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewProjectStore(cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer store.Close()

			projects, err := store.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROJECT ID\tUPDATED")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.ProjectID, p.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewProjectStore(cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project %s removed\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}
