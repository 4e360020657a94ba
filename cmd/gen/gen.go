/*
Copyright © 2025 Roy Sowers <inskribe@inskribestudio.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package gen

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/inskribe/drift/cmd"
	core "github.com/inskribe/drift/internal/diff"
	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/inspect"
	"github.com/inskribe/drift/internal/render"
	"github.com/inskribe/drift/internal/schema"
	"github.com/inskribe/drift/internal/utils"
)

// genCmdArgs holds parsed CLI arguments for the gen command.
type genCmdArgs struct {
	dryRun     bool   // if true, prints both sequences without writing files
	connKey    string // environment key to retrieve the PostgreSQL connection string. Ignored if connString is passed.
	connString string // full PostgreSQL connection string
	schemaPath string // path to the declared schema file
	label      string // label embedded in the generated delta filenames
}

var (
	genRequest genCmdArgs
	genCmd     = &cobra.Command{
		Use:   "gen [label] [options]",
		Short: "Generate up/down delta files from detected schema drift",
		Long: `The gen command compares the declared schema against the connected database
and generates the next versioned pair of delta files.

The up delta migrates the database to the declared state; the down delta is
its exact inverse. When no drift is detected both files contain only a no-op
comment, which schemer's prune skips.

Examples:
  drift gen
  drift gen add_users
  drift gen add_users --schema db/schema.json
  drift gen --dry-run
`,
		Args: cobra.MaximumNArgs(1),
		Run: func(command *cobra.Command, args []string) {
			if cmd.RootCmd.PersistentPreRun != nil {
				cmd.RootCmd.PersistentPreRun(command, args)
			}

			_, err := utils.LoadDotEnv()
			if err != nil {
				glog.Error("%v", err)
				return
			}

			if err := parseGenCommand(&genRequest); err != nil {
				glog.Error("%v", err)
				return
			}

			genRequest.label = "drift"
			if len(args) == 1 {
				genRequest.label = args[0]
			}

			if err := utils.WithConn(genRequest.connString, executeGenCommand); err != nil {
				glog.Error("%v", err)
				return
			}
		},
	}
)

func init() {
	cmd.RootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVarP(&genRequest.connKey, "conn-key", "k", "", "The key to fetch the environment variable value for the database connection string.")
	genCmd.Flags().StringVarP(&genRequest.connString, "conn-string", "s", "", "The driver specific connection string. If passed the connection key will be ignored.")
	genCmd.Flags().StringVarP(&genRequest.schemaPath, "schema", "m", "schema.json", "Path to the declared schema file.")
	genCmd.Flags().BoolVarP(&genRequest.dryRun, "dry-run", "d", false, "Print the generated up and down sequences without writing delta files.")
}

// parseGenCommand validates and resolves input flags for the gen command.
// Ensures that either --conn-key or --conn-string is provided.
//
// Returns:
//   - error: DriftErr with a specific code if validation fails
var parseGenCommand = func(request *genCmdArgs) error {
	if request.connKey == "" && request.connString == "" {
		return &errdrift.DriftErr{
			Code:    "0001",
			Message: "--conn-key or --conn-string must be used.",
		}
	}

	if request.connString == "" {
		request.connString = os.Getenv(request.connKey)
		if request.connString == "" {
			return &errdrift.DriftErr{
				Code:    "0002",
				Message: fmt.Sprintf("failed to get environment variable value for key: %s", request.connKey),
			}
		}
	}

	if request.schemaPath == "" {
		return &errdrift.DriftErr{
			Code:    "0003",
			Message: "--schema must not be empty.",
		}
	}
	return nil
}

// executeGenCommand runs the full generation flow: load the declared
// schema, diff it against the connected database, render both directions
// and either print them or write the next delta file pair.
//
// Params:
//   - connection: pointer to a pgx.Conn for introspection queries
//   - ctx: context for database operations
//
// Returns:
//   - error: non-nil if any step of the generation flow fails
func executeGenCommand(connection *pgx.Conn, ctx context.Context) error {
	declared, err := schema.Load(genRequest.schemaPath)
	if err != nil {
		return err
	}

	comparator := &core.Comparator{
		Declared:  declared,
		Inspector: inspect.NewPostgresInspector(connection),
	}

	diffs, err := comparator.Compare(ctx)
	if err != nil {
		return err
	}

	glog.Info("Detected %d schema differences", len(diffs))

	upCommands, err := render.Commands(diffs, render.Upgrade)
	if err != nil {
		return err
	}
	downCommands, err := render.Commands(diffs, render.Downgrade)
	if err != nil {
		return err
	}

	upSQL, err := render.SQL(upCommands)
	if err != nil {
		return err
	}
	downSQL, err := render.SQL(downCommands)
	if err != nil {
		return err
	}

	if genRequest.dryRun {
		glog.Info("Dry run, no delta files written.\n\n-- up --\n%s\n-- down --\n%s", upSQL, downSQL)
		return nil
	}

	return writeDeltaFiles(genRequest.label, upSQL, downSQL)
}
