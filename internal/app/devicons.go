package app

import (
	"os"
	"path"
	"strings"
	"time"

	devicons "github.com/epilande/go-devicons"
)

type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

// iconForItem returns a Nerd Font icon for items that look like paths: a
// trailing slash marks a directory, an extension marks a file. Other items
// get no icon.
func iconForItem(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t") {
		return ""
	}
	if strings.HasSuffix(text, "/") {
		name := path.Base(strings.TrimSuffix(text, "/"))
		return devicons.IconForInfo(iconFileInfo{name: name, isDir: true}).Icon
	}
	if path.Ext(text) == "" {
		return ""
	}
	return devicons.IconForInfo(iconFileInfo{name: path.Base(text)}).Icon
}
