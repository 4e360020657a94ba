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

package init

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inskribe/drift/cmd"
	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/templates"
	"github.com/inskribe/drift/internal/utils"
)

var (
	databaseArgs templates.EnvTemplateArgs

	initCmd = &cobra.Command{
		Use:   "init [options]",
		Short: "Initialize a drift project in the current directory",
		Long: `The init command sets up a new drift project scaffold in the current working
directory.

It creates a deltas directory (if it doesn't already exist), generates a .env
file for environment-specific variables like the database connection string,
and writes a starter schema.json declared schema file.

Use the --key flag to customize the generated environment variable key.

Note: This command is intended for local development or initial setup and
should not be run in production environments, as it may overwrite existing
configuration files.
`,
		Run: func(command *cobra.Command, args []string) {
			if cmd.RootCmd.PersistentPreRun != nil {
				cmd.RootCmd.PersistentPreRun(command, args)
			}

			glog.Info("Initializing drift project\n\n")

			_, err := utils.LoadDotEnv()
			if err != nil {
				glog.Error("%v", err)
			}

			if err := executeInitCommand(); err != nil {
				glog.Error("%v", err)
			}
		},
	}
)

func init() {
	cmd.RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&databaseArgs.UrlValue, "url", "u", "", "The connection string to your database.")
	initCmd.Flags().StringVarP(&databaseArgs.UrlKey, "key", "k", "", "An environment variable key to retrieve connection string.")
}

// executeInitCommand initializes a new drift project in the current
// directory. Creates the deltas directory, generates a .env file, and
// writes a starter declared schema file.
//
// Returns:
//   - error: non-nil if any step in the initialization process fails
func executeInitCommand() error {
	cwd, err := os.Getwd()
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0067",
			Message: "failed to get working directory.",
			Err:     err,
		}
	}

	if databaseArgs.UrlKey == "" {
		databaseArgs.UrlKey = "DATABASE_URL"
		glog.Info("No --key provided, defaulting to DATABASE_URL")
	}

	if databaseArgs.UrlValue == "" {
		val, ok := os.LookupEnv(databaseArgs.UrlKey)
		if ok && val != "" {
			databaseArgs.UrlValue = val
			glog.Info("Loaded database URL from env var %s", databaseArgs.UrlKey)
		} else {
			databaseArgs.UrlValue = "YOUR_DATABASE_URL_VALUE"
			glog.Info(`No --url or environment value found, defaulting to placeholder.
Please update after initialization.`)
		}
	}

	deltaPath := filepath.Join(cwd, "deltas")
	if err := os.Mkdir(deltaPath, 0755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return &errdrift.DriftErr{
				Code:    "0068",
				Message: "failed to create deltas directory.",
				Err:     err,
			}
		}
		glog.Info("Deltas directory already exists, skipping creation.")
	}

	if err := databaseArgs.WriteEnvFile(cwd); err != nil {
		return err
	}
	glog.Info("Created .env file")

	if err := templates.WriteSchemaFile(cwd); err != nil {
		var driftErr *errdrift.DriftErr
		if errors.As(err, &driftErr) && driftErr.Code == "0018" {
			glog.Info("Schema file already exists, skipping creation.")
			return nil
		}
		return err
	}
	glog.Info("Created starter schema.json")

	return nil
}
