/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdpkg "github.com/Paintersrp/fx/pkg/cmd"
	"github.com/Paintersrp/fx/pkg/cmd/root"
)

func Execute() {
	// FX_LOG_LEVEL overrides the default log level; FX_CONFIG_DIR is read
	// by the config layer itself.
	viper.SetEnvPrefix("fx")
	cobra.CheckErr(viper.BindEnv(cmdpkg.KeyLogLevel))

	env := &cmdpkg.Env{}
	rootCmd, err := root.NewCmdRoot(env)
	cobra.CheckErr(err)

	execErr := rootCmd.Execute()
	if closeErr := env.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "failed to close state: %v\n", closeErr)
	}
	if execErr != nil {
		os.Exit(1)
	}
}
