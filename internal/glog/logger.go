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

package glog

import (
	"github.com/inskribe/drift/internal/glog/enums"
)

type loggerFunc func(category enums.LogCategory, msg string, args ...interface{})

var activeLogger loggerFunc = releaseLogger

// InitializeLogger selects the logger implementation for the process.
// Pass true to enable the verbose debug logger with colored output.
func InitializeLogger(verbose bool) {
	if verbose {
		activeLogger = debugLogger
		return
	}
	activeLogger = releaseLogger
}

func Info(msg string, args ...interface{}) {
	activeLogger(enums.Info, msg, args...)
}

func Debug(msg string, args ...interface{}) {
	activeLogger(enums.Debug, msg, args...)
}

func Warn(msg string, args ...interface{}) {
	activeLogger(enums.Warn, msg, args...)
}

func Error(msg string, args ...interface{}) {
	activeLogger(enums.Error, msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	activeLogger(enums.Fatal, msg, args...)
}
