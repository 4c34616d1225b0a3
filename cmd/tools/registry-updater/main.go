// cmd/tools/registry-updater/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/ansar-mazhar/Loan-Approval-System/pkg/registry"
)

var pathFlag = &cli.StringFlag{
	Name:  "path",
	Usage: "Path to registry file",
	Value: "configs/activity-registry.json",
}

func main() {
	cmd := &cli.Command{
		Name:  "registry-updater",
		Usage: "Maintain the activity registry of the risk workers",
		Flags: []cli.Flag{pathFlag},
		Commands: []*cli.Command{
			addCmd(),
			updateCmd(),
			validateCmd(),
			listCmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a new activity to the registry",
		UsageText: `registry-updater add --id risk.default.assess --displayName "Assess Default Risk" --category risk --taskType assess-default-risk`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Activity ID (e.g., risk.default.assess)", Required: true},
			&cli.StringFlag{Name: "displayName", Usage: "Display Name", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Description"},
			&cli.StringFlag{Name: "category", Usage: "Category (e.g., risk)", Required: true},
			&cli.StringFlag{Name: "taskType", Usage: "Camunda Task Type (e.g., assess-default-risk)", Required: true},
			&cli.StringFlag{Name: "version", Usage: "Version", Value: "1.0.0"},
			&cli.StringFlag{Name: "status", Usage: "Implementation Status (planned, in-progress, completed, verified)", Value: "planned"},
			&cli.StringFlag{Name: "timeout", Usage: "Job timeout", Value: "10s"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String(pathFlag.Name)
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				if !os.IsNotExist(err) {
					return fmt.Errorf("failed to load registry: %w", err)
				}
				reg = registry.New()
			}

			activity := registry.Activity{
				ID:                   cmd.String("id"),
				DisplayName:          cmd.String("displayName"),
				Description:          cmd.String("description"),
				Category:             cmd.String("category"),
				Version:              cmd.String("version"),
				TaskType:             cmd.String("taskType"),
				ImplementationStatus: cmd.String("status"),
				InputSchema:          map[string]string{},
				OutputSchema:         map[string]string{},
				ErrorCodes:           []string{},
				Timeout:              cmd.String("timeout"),
				Workflows:            []string{},
				Tags:                 []string{},
			}
			if err := reg.Add(activity); err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			if err := registry.Save(reg, path); err != nil {
				return err
			}
			fmt.Printf("Added activity: %s\n", activity.ID)
			return nil
		},
	}
}

func updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an existing activity's field",
		UsageText: "registry-updater update --id risk.default.assess --field status --value verified",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Activity ID or task type to update", Required: true},
			&cli.StringFlag{Name: "field", Usage: "Field to update (status, version, retries, timeout, ...)", Required: true},
			&cli.StringFlag{Name: "value", Usage: "New value for the field", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String(pathFlag.Name)
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			id, field, value := cmd.String("id"), cmd.String("field"), cmd.String("value")
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := registry.Save(reg, path); err != nil {
				return err
			}
			fmt.Printf("Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the registry file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := registry.LoadRegistry(cmd.String(pathFlag.Name))
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered activities",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := registry.LoadRegistry(cmd.String(pathFlag.Name))
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTASK TYPE\tCATEGORY\tSTATUS\tVERSION")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.Category, a.ImplementationStatus, a.Version)
			}
			return w.Flush()
		},
	}
}
