// Copyright 2025 walteh LLC
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

// Package stats turns raw rsync output into normalized transfer statistics.
// Two distinct sources exist and are never mixed: the --stats block of a
// real run ("examined" and "transferred" counters) and the itemized change
// list of a dry run (files that would actually transfer bytes).
package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// 📊 TransferStats is the normalized result of a real-run stats block.
// Invariant: transferred ≤ examined for both files and bytes.
type TransferStats struct {
	FilesExamined    int64
	FilesTransferred int64
	BytesExamined    int64
	BytesTransferred int64
}

// 📋 DryRunSummary counts the files that would actually transfer content,
// derived from itemized change codes. Directory-creation and
// attribute-only items contribute to neither count.
type DryRunSummary struct {
	Files int64
	Bytes int64
}

// The four --stats counters. Numbers may carry thousands separators and,
// in newer rsync versions, a parenthesized breakdown after the count.
var (
	reFilesExamined    = regexp.MustCompile(`Number of files:\s+([\d,]+)`)
	reFilesTransferred = regexp.MustCompile(`Number of (?:regular )?files transferred:\s+([\d,]+)`)
	reBytesExamined    = regexp.MustCompile(`Total file size:\s+([\d,]+)\s+bytes`)
	reBytesTransferred = regexp.MustCompile(`Total transferred file size:\s+([\d,]+)\s+bytes`)
)

// 🔍 ParseStats scans raw rsync output for the --stats block. The second
// return is false when the block is absent, e.g. when the tool ran in a
// mode without stats; that is not an error.
func ParseStats(raw string) (*TransferStats, bool) {
	st := &TransferStats{}
	counters := []struct {
		re   *regexp.Regexp
		into *int64
	}{
		{reFilesExamined, &st.FilesExamined},
		{reFilesTransferred, &st.FilesTransferred},
		{reBytesExamined, &st.BytesExamined},
		{reBytesTransferred, &st.BytesTransferred},
	}
	for _, c := range counters {
		m := c.re.FindStringSubmatch(raw)
		if m == nil {
			return nil, false
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err != nil {
			return nil, false
		}
		*c.into = n
	}
	return st, true
}

// 🔍 ParseDryRunSummary scans itemized change lines of the form
// CODE:SIZE:PATH. Only codes whose prefix marks an actual file-content
// transfer (sent or received regular file) count; everything else —
// directory creation, attribute-only changes, deletions — counts toward
// neither files nor bytes.
func ParseDryRunSummary(raw string) DryRunSummary {
	var sum DryRunSummary
	for _, line := range strings.Split(raw, "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		if !transfersFileContent(parts[0]) {
			continue
		}
		size, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			continue
		}
		sum.Files++
		sum.Bytes += size
	}
	return sum
}

// transfersFileContent classifies an itemize code by prefix: the first
// character is the update type (< sent, > received) and the second is the
// file type (f regular file). Codes vary in their trailing characters, so
// classification never compares the whole string.
func transfersFileContent(code string) bool {
	if len(code) < 2 {
		return false
	}
	return (code[0] == '<' || code[0] == '>') && code[1] == 'f'
}
