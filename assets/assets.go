package assets

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var assetsFS embed.FS

// GetIconResource returns the application icon for Fyne
func GetIconResource() fyne.Resource {
	data, err := assetsFS.ReadFile("icon.svg")
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource("icon.svg", data)
}
