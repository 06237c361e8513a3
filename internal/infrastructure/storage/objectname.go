package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newObjectName assigns a globally unique object name for an upload:
// <unix-millis>-<uuid><original extension>.
func newObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// objectNameFromURL derives the object name from the public URL suffix.
func objectNameFromURL(url string) string {
	return path.Base(strings.TrimSuffix(url, "/"))
}
