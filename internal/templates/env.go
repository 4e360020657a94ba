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

package templates

import (
	_ "embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/inskribe/drift/internal/errdrift"
)

//go:embed assets/drift.env
var envTemplate string

//go:embed assets/schema.json
var schemaTemplate string

type EnvTemplateArgs struct {
	UrlKey   string
	UrlValue string
}

// WriteEnvFile creates a .env file in directoryPath holding the database
// connection variable.
func (args *EnvTemplateArgs) WriteEnvFile(directoryPath string) error {
	templ, err := template.New("env").Parse(envTemplate)
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0015",
			Message: "failed to parse env template.",
			Err:     err,
		}
	}
	file, err := os.Create(filepath.Join(directoryPath, ".env"))
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0016",
			Message: "failed to create .env file.",
			Err:     err,
		}
	}
	defer file.Close()

	if err := templ.Execute(file, args); err != nil {
		return &errdrift.DriftErr{
			Code:    "0017",
			Message: "failed to write template to .env file.",
			Err:     err,
		}
	}
	return nil
}

// WriteSchemaFile creates a starter declared schema file in directoryPath.
// Existing files are never overwritten.
func WriteSchemaFile(directoryPath string) error {
	path := filepath.Join(directoryPath, "schema.json")
	if _, err := os.Stat(path); err == nil {
		return &errdrift.DriftErr{
			Code:    "0018",
			Message: "schema file already exists at: " + path,
		}
	}

	if err := os.WriteFile(path, []byte(schemaTemplate), 0644); err != nil {
		return &errdrift.DriftErr{
			Code:    "0019",
			Message: "failed to create schema.json file.",
			Err:     err,
		}
	}
	return nil
}
