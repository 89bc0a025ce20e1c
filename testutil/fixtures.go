package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateNote writes a markdown note file with the full YAML frontmatter
// an import round trip produces
func CreateNote(dir, name, id, title string, tags ...string) error {
	content := fmt.Sprintf(`---
id: %s
origid: %s
authors: [tester]
date: 2019-10-05T15:00:00Z
latest: true
revision: 1
title: %s
tags: [%s]
weight: 0
---
%s
`, id, id, title, strings.Join(tags, ", "), title)

	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}
