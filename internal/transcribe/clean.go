package transcribe

import "strings"

// CleanResponse strips the decoration models add when they ignore the
// formatting instructions: Markdown code fences and prose around the JSON
// payload. It keeps from the first '{' or '[' to the matching last closer,
// whichever opener appears first.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			// Single-line weirdness; just return as-is.
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there is still junk around the JSON, keep only the
	// outermost object or array.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}
	if start != -1 {
		if end := strings.LastIndex(s, closer); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
