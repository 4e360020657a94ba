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
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inskribe/drift/internal/errdrift"
	"github.com/inskribe/drift/internal/glog"
	"github.com/inskribe/drift/internal/templates"
	"github.com/inskribe/drift/internal/utils"
)

// determineNextTag returns the next available delta tag for a new delta
// file group. Scans the given deltaPath for existing *.sql files and
// determines the next tag in sequence.
//
// Params:
//   - deltaPath: the directory containing delta files
//
// Returns:
//   - int: the next tag number (0 if directory is empty)
//   - error: non-nil if the directory can't be read or a tag can't be parsed
func determineNextTag(deltaPath string) (int, error) {
	files, err := os.ReadDir(deltaPath)
	if err != nil {
		return -1, &errdrift.DriftErr{
			Code:    "0060",
			Message: "failed to read directory at: " + deltaPath,
			Err:     err,
		}
	}

	if len(files) == 0 {
		return 0, nil
	}

	expression := regexp.MustCompile(`^(\d+)_.*\.sql$`)

	next := -1
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		matches := expression.FindStringSubmatch(file.Name())
		if matches == nil || len(matches) < 2 {
			continue
		}

		tag, err := strconv.Atoi(matches[1])
		if err != nil {
			return -1, &errdrift.DriftErr{
				Code:    "0061",
				Message: "malformed delta tag: " + matches[0],
				Err:     err,
			}
		}

		if tag > next {
			next = tag
		}
	}

	return next + 1, nil
}

// writeDeltaFiles writes the generated up and down SQL as the next
// versioned delta file pair in the deltas directory.
//
// Naming format:
//
//	tag_label.{up,down}.sql
//
// Both files share one revision id so the pair can be traced to a single
// generation run.
func writeDeltaFiles(label string, upSQL, downSQL string) error {
	deltaPath, err := utils.GetDeltaPath()
	if err != nil {
		return err
	}

	nextTag, err := determineNextTag(deltaPath)
	if err != nil {
		return err
	}

	name := strings.Join([]string{utils.ToPrefix(nextTag), strings.Trim(label, "_")}, "_")
	upPath := filepath.Join(deltaPath, name+".up.sql")
	downPath := filepath.Join(deltaPath, name+".down.sql")

	for _, path := range []string{upPath, downPath} {
		if _, err := os.Stat(path); err == nil {
			return &errdrift.DriftErr{
				Code:    "0062",
				Message: "delta file already exists for: " + path,
			}
		}
	}

	revision := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := writeDelta(upPath, label, "up", revision, timestamp, upSQL); err != nil {
		return err
	}
	if err := writeDelta(downPath, label, "down", revision, timestamp, downSQL); err != nil {
		return err
	}

	glog.Info("Created deltas:\n  %s\n  %s\n", upPath, downPath)
	return nil
}

func writeDelta(path, label, direction, revision, timestamp, body string) error {
	file, err := os.Create(path)
	if err != nil {
		return &errdrift.DriftErr{
			Code:    "0063",
			Message: "failed to create delta file at: " + path,
			Err:     err,
		}
	}
	defer file.Close()

	header := templates.DeltaTemplateArgs{
		Revision:  revision,
		Label:     label,
		Direction: direction,
		Timestamp: timestamp,
	}
	if err := header.WriteHeader(file); err != nil {
		return err
	}

	if _, err := file.WriteString(body); err != nil {
		return &errdrift.DriftErr{
			Code:    "0064",
			Message: "failed to write delta file at: " + path,
			Err:     err,
		}
	}
	return nil
}
