// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/glyphwallet/swap-engine/app"
	"github.com/glyphwallet/swap-engine/config"
)

var (
	rootCMD = &cobra.Command{
		Use: "",
	}

	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run the swap engine",
		Long:  "Run the swap engine, exposing quoting, execution and settlement tracking over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
)

func init() {
	config.BindFlags(rootCMD)
}

func Execute() {
	rootCMD.AddCommand(runCMD)
	if err := rootCMD.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute root cmd")
	}
}
