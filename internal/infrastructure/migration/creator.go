package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"
)

const migrationTemplate = `-- Migration: {{.Name}}{{if .Down}} (Rollback){{end}}
-- Created: {{.Timestamp}}
{{- if .Description}}
-- Description: {{.Description}}
{{- end}}

`

var (
	fileTmpl      = template.Must(template.New("migration").Parse(migrationTemplate))
	filePattern   = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)
	dropChars     = regexp.MustCompile(`[^a-z0-9 _-]`)
	separators    = regexp.MustCompile(`[ _-]+`)
	versionLayout = "20060102150405"
)

// MigrationFile is a freshly created up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// Migration is one version found on disk
type Migration struct {
	Version string
	Name    string
	HasUp   bool
	HasDown bool
}

// String renders the migration as version_name
func (m Migration) String() string {
	return m.Version + "_" + m.Name
}

// CreateMigration writes an empty up/down pair named after the current time
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	return createMigrationAt(migrationsDir, name, description, time.Now())
}

func createMigrationAt(migrationsDir, name, description string, now time.Time) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := now.Format(versionLayout)
	base := filepath.Join(migrationsDir, version+"_"+slug)
	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
		UpPath:      base + ".up.sql",
		DownPath:    base + ".down.sql",
	}

	if err := writeMigrationFile(mf.UpPath, mf, false); err != nil {
		return nil, err
	}
	if err := writeMigrationFile(mf.DownPath, mf, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeMigrationFile(path string, mf *MigrationFile, down bool) error {
	var b strings.Builder
	err := fileTmpl.Execute(&b, struct {
		*MigrationFile
		Down bool
	}{mf, down})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	// O_EXCL: never clobber an existing migration
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()
	_, err = f.WriteString(b.String())
	return err
}

// sanitizeName lower-cases name, drops punctuation and joins words with underscores
func sanitizeName(name string) string {
	kept := dropChars.ReplaceAllString(strings.ToLower(name), "")
	return strings.Trim(separators.ReplaceAllString(kept, "_"), "_")
}

// ListMigrations returns the migrations in a directory ordered by version.
// A missing directory yields an empty list.
func ListMigrations(migrationsDir string) ([]Migration, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Migration{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := filePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		m, ok := byVersion[match[1]]
		if !ok {
			m = &Migration{Version: match[1], Name: match[2]}
			byVersion[match[1]] = m
		}
		if match[3] == "up" {
			m.HasUp = true
		} else {
			m.HasDown = true
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// CheckPairs reports every migration missing its up or down file
func CheckPairs(migrations []Migration) error {
	var missing []string
	for _, m := range migrations {
		if !m.HasUp {
			missing = append(missing, m.String()+".up.sql")
		}
		if !m.HasDown {
			missing = append(missing, m.String()+".down.sql")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete migrations: %s", strings.Join(missing, ", "))
	}
	return nil
}
