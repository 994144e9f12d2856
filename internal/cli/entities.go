package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thecodejesters/visaadmin/internal/adminops"
	"github.com/thecodejesters/visaadmin/internal/models"
)

// entityOps is the surface adminops exposes for each entity.
type entityOps[T, In, P any] interface {
	GetAll(ctx context.Context) []T
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) *T
	Update(ctx context.Context, id int64, patch P) *T
	Delete(ctx context.Context, id int64) bool
	Clone(ctx context.Context, id int64) (*T, error)
}

var errOperationFailed = errors.New("operation failed, rerun with -v for details")

func newRulesCommand(opts *options) *cobra.Command {
	return newEntityCommand(opts, "rules", "Manage permit rules",
		func(d adminops.Doer) entityOps[models.PermitRule, models.PermitRuleInput, models.PermitRulePatch] {
			return adminops.NewPermitRules(d)
		})
}

func newDocsCommand(opts *options) *cobra.Command {
	return newEntityCommand(opts, "docs", "Manage required documents",
		func(d adminops.Doer) entityOps[models.RequiredDocument, models.RequiredDocumentInput, models.RequiredDocumentPatch] {
			return adminops.NewRequiredDocuments(d)
		})
}

func newEntityCommand[T, In, P any](opts *options, use, short string, open func(adminops.Doer) entityOps[T, In, P]) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}

	ops := func() (entityOps[T, In, P], error) {
		c, err := opts.client()
		if err != nil {
			return nil, err
		}
		return open(c), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				o, err := ops()
				if err != nil {
					return err
				}
				return printJSON(cmd, o.GetAll(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				o, err := ops()
				if err != nil {
					return err
				}
				item, err := o.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, item)
			},
		},
		withPayload(&cobra.Command{
			Use:   "create",
			Short: "Create an entry from a JSON payload",
			Args:  cobra.NoArgs,
		}, func(cmd *cobra.Command, args []string, data, file string) error {
			var in In
			if err := readPayload(cmd, data, file, &in); err != nil {
				return err
			}
			o, err := ops()
			if err != nil {
				return err
			}
			created := o.Create(cmd.Context(), in)
			if created == nil {
				return errOperationFailed
			}
			return printJSON(cmd, created)
		}),
		withPayload(&cobra.Command{
			Use:   "update <id>",
			Short: "Apply a partial JSON update",
			Args:  cobra.ExactArgs(1),
		}, func(cmd *cobra.Command, args []string, data, file string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch P
			if err := readPayload(cmd, data, file, &patch); err != nil {
				return err
			}
			o, err := ops()
			if err != nil {
				return err
			}
			updated := o.Update(cmd.Context(), id, patch)
			if updated == nil {
				return errOperationFailed
			}
			return printJSON(cmd, updated)
		}),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				o, err := ops()
				if err != nil {
					return err
				}
				if !o.Delete(cmd.Context(), id) {
					return errOperationFailed
				}
				return printJSON(cmd, map[string]bool{"success": true})
			},
		},
		&cobra.Command{
			Use:   "clone <id>",
			Short: "Copy an entry under a new id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				o, err := ops()
				if err != nil {
					return err
				}
				clone, err := o.Clone(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, clone)
			},
		},
	)
	return cmd
}

func withPayload(cmd *cobra.Command, run func(cmd *cobra.Command, args []string, data, file string) error) *cobra.Command {
	var data, file string
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&file, "file", "f", "", `File containing the JSON payload ("-" for stdin)`)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, args, data, file)
	}
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
