package merge

import "strings"

// MergeAppend merges line-based files such as .gitignore: destination
// lines are kept verbatim in their original order, then template lines not
// already present are appended. Blank template lines are dropped; blank
// destination lines survive untouched. The result always ends in a newline.
func MergeAppend(dst, src []byte) []byte {
	dstLines := splitLines(dst)

	seen := make(map[string]bool, len(dstLines))
	for _, line := range dstLines {
		if strings.TrimSpace(line) != "" {
			seen[line] = true
		}
	}

	out := make([]string, 0, len(dstLines))
	out = append(out, dstLines...)

	for _, line := range splitLines(src) {
		if strings.TrimSpace(line) == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}

	if len(out) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(out, "\n") + "\n")
}

// splitLines splits content into lines without producing a phantom empty
// line for a trailing newline.
func splitLines(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
