package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// ArchiveRestore restores one replaced archive.
type ArchiveRestore struct {
	// Backup is the .backup sibling of the original archive.
	Backup string `json:"backup"`
	// Original is where the archive is restored to.
	Original string `json:"original"`
	// Replacement is the archive installed by the pass; removed when it differs from Original.
	Replacement string `json:"replacement"`
}

// Recovery describes what a recovery script restores.
type Recovery struct {
	Descriptor       string
	DescriptorBackup string
	Archives         []ArchiveRestore
	StagingDir       string
	Created          time.Time
}

var scriptTemplate = template.Must(template.New("recover").Funcs(template.FuncMap{
	"q": shellQuote,
}).Parse(`#!/bin/bash
# Dependency recovery script
# Generated {{.Created.Format "2006-01-02 15:04:05"}}

echo "Restoring dependencies..."
{{if .DescriptorBackup}}
if [ -f {{q .DescriptorBackup}} ]; then
    cp {{q .DescriptorBackup}} {{q .Descriptor}}
    echo "Restored: {{.Descriptor}}"
fi
{{end}}{{range .Archives}}
if [ -f {{q .Backup}} ]; then
{{- if ne .Replacement .Original}}
    rm -f {{q .Replacement}}
{{- end}}
    mv {{q .Backup}} {{q .Original}}
    echo "Restored: {{.Original}}"
fi
{{end}}
rm -f {{q .StagingDir}}/temp_*.jar

echo "Recovery complete"
`))

// WriteRecoveryScript renders r to path with mode 0755, replacing any earlier script.
func WriteRecoveryScript(path string, r Recovery) error {
	if r.Created.IsZero() {
		r.Created = time.Now()
	}
	if r.StagingDir == "" {
		r.StagingDir = "."
	}

	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, r); err != nil {
		return fmt.Errorf("failed to render recovery script: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create recovery script directory: %w", err)
		}
	}
	//nolint:gosec // G306: the script must be executable
	if err := os.WriteFile(path, buf.Bytes(), 0o755); err != nil {
		return fmt.Errorf("failed to write recovery script: %w", err)
	}
	// WriteFile leaves the mode of an existing file alone.
	//nolint:gosec // G302: the script must be executable
	return os.Chmod(path, 0o755)
}

// shellQuote wraps s in single quotes for bash.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
