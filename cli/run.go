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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jugadbase/jugadb/engine"
	"github.com/jugadbase/jugadb/log"
	"github.com/jugadbase/jugadb/types"
)

var runCmd = &cobra.Command{
	Use:     "run <db-file> <query>",
	Short:   "Open a database file and execute a single query against it",
	Example: `  jugadb run ./mydb.db "SELECT * FROM accounts;"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {

		path, query := args[0], args[1]

		db, err := engine.Open(path)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", path, err)
		}
		defer db.Close()

		res, err := db.Process(query)
		if err != nil {
			return err
		}

		printResult(res)

		if res.Exec.Code != engine.CodeOK {
			os.Exit(1)
		}

		return nil

	},
}

// printResult renders a Result as a tab-aligned table, the way version
// prints build info.
func printResult(res *engine.Result) {

	exec := res.Exec

	if exec.Code != engine.CodeOK {
		log.Errorf("error: %s", exec.Message)
		return
	}

	if len(exec.Columns) == 0 {
		fmt.Printf("OK (%d row(s) affected)\n", exec.RowCount)
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 1, 2, ' ', 0)

	for i, col := range exec.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, row := range exec.Rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprintf(tw, "%v", types.Display(v))
		}
		fmt.Fprintln(tw)
	}

	tw.Flush()

}
