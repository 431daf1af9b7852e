package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/cardflow/internal/intent"
)

// submitAndPrint posts an intent and prints its acknowledgement.
func submitAndPrint(cmd *cobra.Command, opts *options, t intent.Type, payload interface{}) error {
	ack, err := newClient(opts).submit(cmd.Context(), t, payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "accepted %s %s\n", ack.Type, ack.ID)
	return nil
}

func newCreateCmd(opts *options) *cobra.Command {
	var req intent.CreateCardRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card at the end of a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submitAndPrint(cmd, opts, intent.CardCreateRequest, req)
		},
	}
	cmd.Flags().StringVar(&req.BoardID, "board", "", "board ID")
	cmd.Flags().StringVar(&req.ListID, "list", "", "list ID")
	cmd.Flags().StringVar(&req.Text, "text", "", "card text")
	markRequired(cmd, "board", "list", "text")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	var req intent.RemoveCardRequest
	cmd := &cobra.Command{
		Use:   "remove CARD_ID",
		Short: "Remove a card from its list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CardID = args[0]
			return submitAndPrint(cmd, opts, intent.CardRemoveRequest, req)
		},
	}
	cmd.Flags().StringVar(&req.BoardID, "board", "", "board ID")
	cmd.Flags().StringVar(&req.ListID, "list", "", "list ID")
	markRequired(cmd, "board", "list")
	return cmd
}

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch CARD_ID",
		Short: "Load a card with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitAndPrint(cmd, opts, intent.CardFetchRequest, intent.FetchCardRequest{CardID: args[0]})
		},
	}
}

func newUpdateCmd(opts *options) *cobra.Command {
	var props []string
	cmd := &cobra.Command{
		Use:   "update CARD_ID --prop key=value...",
		Short: "Update card properties",
		Long: `Update card properties. Values are parsed as JSON when possible and
sent as strings otherwise, so --prop text=hello and --prop text='"hello"'
are the same.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseProps(props)
			if err != nil {
				return err
			}
			return submitAndPrint(cmd, opts, intent.CardUpdateRequest,
				intent.UpdateCardRequest{ID: args[0], Props: parsed})
		},
	}
	cmd.Flags().StringArrayVar(&props, "prop", nil, "property as key=value (repeatable)")
	markRequired(cmd, "prop")
	return cmd
}

func newAddColorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add-color CARD_ID COLOR_ID",
		Short: "Attach a color to a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitAndPrint(cmd, opts, intent.CardAddColorRequest,
				intent.ColorRequest{CardID: args[0], ColorID: args[1]})
		},
	}
}

func newRemoveColorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-color CARD_ID COLOR_ID",
		Short: "Detach a color from a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitAndPrint(cmd, opts, intent.CardRemoveColorRequest,
				intent.ColorRequest{CardID: args[0], ColorID: args[1]})
		},
	}
}

func newMoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move SOURCE_LIST_ID TARGET_LIST_ID",
		Short: "Store the card order of two lists after a drag",
		Long: `Store the card order of two lists. The server sends the lists as they are
in its board state, so the state must already reflect the drag.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitAndPrint(cmd, opts, intent.CardMoveRequest,
				intent.MoveCardRequest{SourceListID: args[0], TargetListID: args[1]})
		},
	}
}

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the board state of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snapshot json.RawMessage
			if err := newClient(opts).get(cmd.Context(), "/api/state", &snapshot); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snapshot)
		},
	}
}

// parseProps turns key=value pairs into raw JSON values.
func parseProps(pairs []string) (map[string]json.RawMessage, error) {
	props := make(map[string]json.RawMessage, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --prop %q: want key=value", pair)
		}
		if json.Valid([]byte(value)) {
			props[key] = json.RawMessage(value)
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		props[key] = encoded
	}
	return props, nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		// ALLOW-PANIC: flag names are defined just above
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
