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

package inspect

import (
	"context"

	"github.com/inskribe/drift/internal/schema"
)

// Inspector reads the observed schema from a live database. Implementations
// own all connection, transaction and timeout concerns; callers treat the
// methods as pure queries.
type Inspector interface {
	// ListTables returns the names of all user tables.
	ListTables(ctx context.Context) ([]string, error)

	// ListColumns returns the columns of the named table in ordinal order.
	// A column default of nil means "no default"; an opaque DefaultSpec
	// means "default present but unrenderable".
	ListColumns(ctx context.Context, table string) ([]schema.Column, error)

	// ListConstraints returns the table-level constraints of the named
	// table. The result must be sufficient to recreate the table, primary
	// key included.
	ListConstraints(ctx context.Context, table string) ([]schema.Constraint, error)
}
