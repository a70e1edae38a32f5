// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jugadbase/jugadb/log"
)

var verbose bool

var mainCmd = &cobra.Command{
	Use:   "jugadb",
	Short: "jugadb command-line interface",
}

func init() {

	mainCmd.AddCommand(
		runCmd,
		versionCmd,
	)

	mainCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging output")

	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel("DEBUG")
		} else {
			log.SetLevel("INFO")
		}
	})

}

// Run runs the cli app.
func Run() {
	if err := mainCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
