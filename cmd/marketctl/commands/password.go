package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghuser/simplemarket/services/account/domain/services"
)

var errWeakPassword = errors.New("password does not meet the policy")

func checkPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-password [password]",
		Short: "Check a password against the policy",
		Long:  "Check a password against the policy. Without an argument the first line of stdin is read.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var candidate string
			if len(args) == 1 {
				candidate = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				candidate = strings.TrimRight(line, "\r\n")
			}

			violations := services.ValidatePassword(candidate)
			out := cmd.OutOrStdout()
			if len(violations) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, v := range violations {
				fmt.Fprintf(out, "%s: %s\n", v.Code, v.Message)
			}
			return errWeakPassword
		},
	}
}
