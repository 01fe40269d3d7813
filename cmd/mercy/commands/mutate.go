/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mutate.go
Description: Mutate command. Streams bit-flip candidates for a seed domain, optionally
resolves each one, and writes a JSON session report.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/mercy/pkg/reporting"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunMutate generates candidates for args[0]
func RunMutate(cmd *cobra.Command, args []string) error {
	seed := args[0]

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx := commandContext(cmd)
	mutator := env.dispatcher.Mutator()
	session := reporting.NewSession(seed, mutator.Name())

	for c := range mutator.Candidates(seed) {
		session.Add(c)
	}

	if viper.GetBool("mutate.resolve") {
		for i, c := range session.Candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			addrs, err := env.lookup.Resolve(ctx, c.Domain)
			session.RecordResolution(i, addrs, err)
			env.logger.LogLookup("resolve", c.Domain, err)
		}
	}
	session.Finish()

	out := cmd.OutOrStdout()
	if viper.GetBool("mutate.table") || session.Resolution {
		fmt.Fprintln(out, reporting.SessionTable(reporting.DefaultTheme(), session))
	} else {
		for _, d := range session.Domains() {
			fmt.Fprintln(out, d)
		}
	}

	if viper.GetBool("mutate.report") {
		path, err := reporting.WriteSession(env.cfg.Report.OutputDir, session)
		if err != nil {
			return err
		}
		env.logger.GetLogger().WithField("path", path).Info("REPORT written")
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	}

	env.logger.LogMutation(seed, len(session.Candidates), session.Duration, logrus.Fields{
		"session":    session.ID,
		"registered": session.Registered,
	})
	return nil
}
