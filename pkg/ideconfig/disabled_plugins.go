package ideconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
)

// DisablePlugins adds ids to disabled_plugins.txt, one per line. Lines
// already in the file are kept in their order.
func (c *Configurator) DisablePlugins(target Target, ids []string) (*types.Result, error) {
	defer logging.LogOperationStart(c.logger, "disable-plugins")()

	path := target.layout().DisabledPluginsPath()

	var before string
	if filesystem.IsFile(c.fs, path) {
		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
		before = string(data)
	}

	lines, seen := splitLines(before)
	var added []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		lines = append(lines, id)
		added = append(added, id)
	}

	after := ""
	if len(lines) > 0 {
		after = strings.Join(lines, "\n") + "\n"
	}
	changed := len(added) > 0

	if changed && !target.CheckMode {
		if err := filesystem.MakeDirs(c.fs, filepath.Dir(path), filesystem.DirMode, target.Owner); err != nil {
			return nil, err
		}
		if err := filesystem.TouchFile(c.fs, path, filesystem.FileMode, target.Owner); err != nil {
			return nil, err
		}
		if err := filesystem.WriteFile(c.fs, path, []byte(after)); err != nil {
			return nil, err
		}
	}

	list := strings.Join(ids, ", ")
	return types.NewResult(changed,
		fmt.Sprintf("Disabled plugins: %s", strings.Join(added, ", ")),
		fmt.Sprintf("Plugins already disabled: %s", list),
		&types.Diff{Before: before, After: after}), nil
}

func splitLines(content string) ([]string, map[string]bool) {
	var lines []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewBufferString(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		seen[line] = true
	}
	return lines, seen
}
