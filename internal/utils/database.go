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

package utils

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/inskribe/drift/internal/errdrift"
)

// WithConn establishes a pgx connection and executes the provided function
// with it. Connection opening, context setup and deferred closing are
// handled here.
//
// Params:
//   - connString: PostgreSQL connection string
//   - fn: a callback that receives the opened connection and context
//
// Returns:
//   - error: any error from connecting or from the callback
var WithConn = func(connString string, fn func(*pgx.Conn, context.Context) error) error {
	ctx := context.Background()
	connection, err := pgx.Connect(ctx, connString)
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0008",
			Message: "failed to connect with database.",
			Err:     err,
		}
	}
	defer connection.Close(ctx)

	return fn(connection, ctx)
}
