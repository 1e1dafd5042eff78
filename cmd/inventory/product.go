package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Add, list, update and delete products",
	}
	cmd.AddCommand(
		newProductAddCmd(a),
		newProductListCmd(a),
		newProductUpdateCmd(a),
		newProductDeleteCmd(a),
	)
	return cmd
}

type productFlags struct {
	name        string
	quantity    int
	description string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "quantity in stock")
	cmd.Flags().StringVar(&f.description, "description", "", "optional description")
	_ = cmd.MarkFlagRequired("name")
}

func newProductAddCmd(a *app) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.AddProduct(f.name, f.quantity, f.description); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "product saved")
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newProductListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := a.svc.ListProducts()
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no products")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tDESCRIPTION")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Quantity, p.Description)
			}
			return w.Flush()
		},
	}
}

func newProductUpdateCmd(a *app) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a product's name, quantity and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.EditProduct(id, f.name, f.quantity, f.description); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "product updated")
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newProductDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.RemoveProduct(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "product deleted")
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product ID %q", raw)
	}
	return id, nil
}
