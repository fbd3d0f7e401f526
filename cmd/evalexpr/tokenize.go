package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/evalexpr/pkg/expr"
	"github.com/lemonberrylabs/evalexpr/pkg/render"
	"github.com/lemonberrylabs/evalexpr/pkg/wire"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [expression]",
		Short: "Tokenize an expression",
		Long: `Tokenize splits an expression into tokens. The expression is read from
the argument, or from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "Output format (pretty|json|msgpack)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var input string
	if len(args) == 1 {
		input = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = strings.TrimRight(string(data), "\r\n")
	}

	tokens, tokErr := expr.Tokenize(input)
	out := cmd.OutOrStdout()

	switch format {
	case "pretty":
		if tokErr != nil {
			errOut := cmd.ErrOrStderr()
			if err := render.Error(errOut, tokErr, render.Options{Color: a.useColor(errOut)}); err != nil {
				return err
			}
			return errReported
		}
		return render.Tokens(out, tokens, render.Options{Color: a.useColor(out)})
	case "json":
		if err := wire.EncodeJSON(out, wire.NewResult(tokens, tokErr)); err != nil {
			return err
		}
	case "msgpack":
		if err := wire.EncodeMsgpack(out, wire.NewResult(tokens, tokErr)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if tokErr != nil {
		return errReported
	}
	return nil
}
