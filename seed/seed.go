// Package seed bundles the starter menu used to initialize an empty
// deployment on first read.
package seed

import (
	_ "embed"
	"encoding/json"

	"restaurant-site-api/models"
)

//go:embed menu.json
var menuJSON []byte

// Menu returns a fresh copy of the seed menu with the update stamp set.
func Menu() (*models.MenuData, error) {
	var menu models.MenuData
	if err := json.Unmarshal(menuJSON, &menu); err != nil {
		return nil, err
	}
	menu.Stamp()
	return &menu, nil
}
