package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Generator scaffolds golang-migrate up/down script pairs.
type Generator struct {
	dir    string
	logger logger.Interface
	now    func() time.Time
}

func NewGenerator(dir string, log logger.Interface) *Generator {
	return &Generator{dir: dir, logger: log, now: time.Now}
}

// CreateMigration writes <timestamp>_<name>.up.sql and .down.sql and returns
// the path of the up script.
func (g *Generator) CreateMigration(name string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	now := g.now()
	base := filepath.Join(g.dir, now.Format("20060102150405")+"_"+name)
	header := fmt.Sprintf("-- %s\n-- created %s\n\n", name, now.Format(time.DateTime))

	up, down := base+".up.sql", base+".down.sql"
	for path, body := range map[string]string{
		up:   header + "-- ALTER TABLE daily_adjustment_slots ADD COLUMN location VARCHAR(100) NULL;\n",
		down: header + "-- ALTER TABLE daily_adjustment_slots DROP COLUMN location;\n",
	} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	g.logger.Infow("migration scripts created", "up", up, "down", down)
	return up, nil
}
