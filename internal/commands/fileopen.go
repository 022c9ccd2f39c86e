package commands

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var openVerbs = []string{"open", "read", "show", "launch", "start"}

// Path patterns, most specific first: drive-letter absolute, slash absolute
// (incl. ~), bare name.ext with a known extension.
var pathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Za-z]:[\\/][^\s"']+`),
	regexp.MustCompile(`(?:^|\s)(~?/[^\s"']+)`),
	regexp.MustCompile(`(?i)\b[\w\-]+\.(?:txt|pdf|doc|docx|xls|xlsx|ppt|pptx|md|csv|jpg|jpeg|png|gif|bmp|webp|go|py|js|ts|java|c|cpp|h|html|css|json|sh|rs|mp4|mkv|avi|mov|mp3|wav|flac|ogg)\b`),
}

// DetectPath extracts the first file-path-looking token from the input.
func DetectPath(input string) (string, bool) {
	for _, re := range pathPatterns {
		m := re.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		path := m[0]
		if len(m) > 1 && m[1] != "" {
			path = m[1]
		}
		return strings.TrimRight(path, ".,!?"), true
	}
	return "", false
}

// HasOpenVerb reports whether the input carries an open/read/show intent.
func HasOpenVerb(input string) bool {
	lower := strings.ToLower(input)
	for _, v := range openVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// Exists reports whether the path names a real file on disk.
func Exists(path string) bool {
	_, err := os.Stat(expandHome(path))
	return err == nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

var extCategory = map[string]string{
	".txt": "document", ".pdf": "document", ".doc": "document", ".docx": "document",
	".xls": "document", ".xlsx": "document", ".ppt": "document", ".pptx": "document",
	".md": "document", ".csv": "document",
	".jpg": "image", ".jpeg": "image", ".png": "image", ".gif": "image",
	".bmp": "image", ".webp": "image",
	".go": "code", ".py": "code", ".js": "code", ".ts": "code", ".java": "code",
	".c": "code", ".cpp": "code", ".h": "code", ".html": "code", ".css": "code",
	".json": "code", ".sh": "code", ".rs": "code",
	".mp4": "video", ".mkv": "video", ".avi": "video", ".mov": "video",
	".mp3": "audio", ".wav": "audio", ".flac": "audio", ".ogg": "audio",
}

// Category buckets a path by extension for dispatch.
func Category(path string) string {
	if cat, ok := extCategory[strings.ToLower(filepath.Ext(path))]; ok {
		return cat
	}
	return "other"
}

// OpenFile dispatches a detected path to the right opener: code files go to
// the editor (falling back to default-open), everything else default-opens.
func (h *Handlers) OpenFile(input string) string {
	path, ok := DetectPath(input)
	if !ok {
		return "I couldn't find a file to open in that."
	}
	path = expandHome(path)
	if !Exists(path) {
		return fmt.Sprintf("I couldn't find %s.", path)
	}

	base := filepath.Base(path)
	if Category(path) == "code" {
		if err := h.Auto.OpenInEditor(path); err == nil {
			return fmt.Sprintf("Opening %s in your editor...", base)
		}
		log.Printf("editor launch failed for %s, falling back to default open", path)
	}
	if err := h.Auto.OpenPath(path); err != nil {
		log.Printf("open %s failed: %v", path, err)
		return fmt.Sprintf("I had trouble opening %s.", base)
	}
	return fmt.Sprintf("Opening %s...", base)
}
