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
	"io"
	"text/template"

	"github.com/inskribe/drift/internal/errdrift"
)

//go:embed assets/delta.sql
var deltaTemplate string

// DeltaTemplateArgs fills the comment header written at the top of every
// generated delta file. The SQL body is written by the caller after the
// header.
type DeltaTemplateArgs struct {
	Revision  string
	Label     string
	Direction string
	Timestamp string
}

// WriteHeader renders the delta file header to w.
//
// Returns:
//   - error: non-nil if the embedded template fails to parse or execute
func (args *DeltaTemplateArgs) WriteHeader(w io.Writer) error {
	templ, err := template.New("delta").Parse(deltaTemplate)
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0013",
			Message: "failed to parse delta header template.",
			Err:     err,
		}
	}
	if err := templ.Execute(w, args); err != nil {
		return &errdrift.DriftErr{
			Code:    "0014",
			Message: "failed to write delta header template.",
			Err:     err,
		}
	}
	return nil
}
