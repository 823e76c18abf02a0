package platform

import (
	"github.com/sqweek/dialog"
)

// PickMediaFile shows a native open dialog filtered to the given extensions
// and returns the chosen path, or "" when the user cancelled
func PickMediaFile(title, filterName string, extensions ...string) string {
	path, err := dialog.File().Title(title).Filter(filterName, extensions...).Load()
	if err != nil {
		return ""
	}
	return path
}

// PickDirectory shows a native directory chooser, "" when cancelled
func PickDirectory(title string) string {
	path, err := dialog.Directory().Title(title).Browse()
	if err != nil {
		return ""
	}
	return path
}

// PickAnyFile shows a native open dialog without extension filtering,
// "" when cancelled
func PickAnyFile(title string) string {
	path, err := dialog.File().Title(title).Load()
	if err != nil {
		return ""
	}
	return path
}
