/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Root command handler. Dispatches -m/-p/-i to the transform engine and
prints exactly one result, or the extended capability listing with -e.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Run executes the method/protocol/input triple from the root flags
func Run(cmd *cobra.Command, args []string) error {
	if viper.GetBool("extended") {
		return ListCapabilities(cmd, args)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	out, err := env.dispatcher.Dispatch(
		commandContext(cmd),
		viper.GetString("method"),
		viper.GetString("protocol"),
		viper.GetString("input"),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
