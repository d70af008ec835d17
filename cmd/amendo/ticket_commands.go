package main

import (
	"github.com/spf13/cobra"
)

func newTicketCommand(ctx *commandContext) *cobra.Command {
	ticketCmd := &cobra.Command{
		Use:   "ticket",
		Short: "Work with ticket definitions",
	}
	ticketCmd.AddCommand(newTicketRenderCommand(ctx))
	return ticketCmd
}

func newTicketRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <ticket.toml>",
		Short: "Print the job ticket XML compiled from a definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, job, err := ctx.loadTicket(args[0])
			if err != nil {
				return err
			}
			_, err = job.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
