package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"restaurant-site-api/models"
)

// ImportResult reports what an import did.
type ImportResult struct {
	CategoriesImported int    `json:"categoriesImported"`
	ItemsImported      int    `json:"itemsImported"`
	TotalCategories    int    `json:"totalCategories"`
	TotalItems         int    `json:"totalItems"`
	Mode               string `json:"mode"`
}

// importedItem is the loose shape rows arrive in: prices may be strings,
// booleans may be "yes"/"no"/"1"/"0".
type importedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       any    `json:"price"`
	Popular     any    `json:"popular"`
	Featured    any    `json:"featured"`
	Available   any    `json:"available"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

type importedCategory struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Items       []importedItem `json:"items"`
}

// ImportMenu parses an uploaded JSON or CSV file (picked by extension) into
// categories and either merges them into the stored menu or replaces it.
// Specials and notices from the prior document survive either mode; the whole
// result is written in a single Set.
func (s *MenuService) ImportMenu(ctx context.Context, content []byte, filename, mode string) (ImportResult, error) {
	if mode != "replace" {
		mode = "merge"
	}

	imported, err := parseImportFile(content, filename)
	if err != nil {
		return ImportResult{}, err
	}
	if len(imported) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no categories or items found in file", ErrValidation)
	}

	// An absent document is an empty menu here. Seeding is a read-path
	// concern; importing into a fresh store must not drag the template in.
	menu, err := s.loadExisting(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	var final []models.MenuCategory
	if mode == "replace" {
		final = imported
	} else {
		final = mergeCategories(menu.Categories, imported)
	}
	for i := range final {
		if final[i].Icon == "" {
			final[i].Icon = "utensils"
		}
	}

	menu.Categories = final
	if err := s.save(ctx, menu); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		CategoriesImported: len(imported),
		TotalCategories:    len(final),
		Mode:               mode,
	}
	for _, cat := range imported {
		result.ItemsImported += len(cat.Items)
	}
	for _, cat := range final {
		result.TotalItems += len(cat.Items)
	}
	return result, nil
}

func parseImportFile(content []byte, filename string) ([]models.MenuCategory, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".json"):
		return parseJSONImport(content)
	case strings.HasSuffix(name, ".csv"):
		items := parseCSV(string(content))
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: no valid items found in CSV", ErrValidation)
		}
		return itemsToCategories(items), nil
	}
	return nil, fmt.Errorf("%w: unsupported file type, use .json or .csv", ErrValidation)
}

// parseJSONImport accepts three shapes: {categories: [...]}, {items: [...]},
// or a bare array (categories when the first element has an items field).
func parseJSONImport(content []byte) ([]models.MenuCategory, error) {
	var wrapper struct {
		Categories []importedCategory `json:"categories"`
		Items      []importedItem     `json:"items"`
	}
	if err := json.Unmarshal(content, &wrapper); err == nil {
		if wrapper.Categories != nil {
			return processCategories(wrapper.Categories), nil
		}
		if wrapper.Items != nil {
			return itemsToCategories(wrapper.Items), nil
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON structure, expected {categories: [...]} or {items: [...]}", ErrValidation)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty JSON array", ErrValidation)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw[0], &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON format", ErrValidation)
	}
	if _, hasItems := probe["items"]; hasItems {
		var cats []importedCategory
		if err := json.Unmarshal(content, &cats); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON format", ErrValidation)
		}
		return processCategories(cats), nil
	}
	var items []importedItem
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON format", ErrValidation)
	}
	return itemsToCategories(items), nil
}

// parseCSV reads a header row then one item per line. Column aliases like
// item_name/name and desc/description are accepted.
func parseCSV(csvString string) []importedItem {
	lines := strings.Split(strings.TrimSpace(csvString), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := parseCSVLine(lines[0])
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	var items []importedItem
	for _, line := range lines[1:] {
		values := parseCSVLine(strings.TrimRight(line, "\r"))
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = strings.TrimSpace(values[i])
			}
		}

		item := importedItem{
			Name:        firstOf(row, "name", "item_name", "item name"),
			Description: firstOf(row, "description", "desc"),
			Price:       orDefault(firstOf(row, "price"), "0"),
			Category:    firstOf(row, "category", "category_name", "category name"),
			Popular:     orDefault(firstOf(row, "popular", "is_popular"), "false"),
			Featured:    orDefault(firstOf(row, "featured", "is_featured", "signature"), "false"),
			Available:   orDefault(firstOf(row, "available", "is_available"), "true"),
			Image:       firstOf(row, "image", "image_url", "image url"),
		}
		if item.Name != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseCSVLine splits on commas outside quotes; "" inside a quoted field is an
// escaped quote.
func parseCSVLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	result = append(result, current.String())
	return result
}

// itemsToCategories groups a flat item list by category name, ordering
// categories by first appearance.
func itemsToCategories(items []importedItem) []models.MenuCategory {
	index := make(map[string]int)
	var categories []models.MenuCategory

	for _, item := range items {
		categoryName := item.Category
		if categoryName == "" {
			categoryName = "Uncategorized"
		}
		categoryID := models.Slugify(categoryName)

		ci, ok := index[categoryID]
		if !ok {
			ci = len(categories)
			index[categoryID] = ci
			// No icon column in flat imports; the default is filled in after
			// merging so it can't clobber a stored icon.
			categories = append(categories, models.MenuCategory{
				ID:    categoryID,
				Name:  categoryName,
				Order: ci,
				Items: []models.MenuItem{},
			})
		}
		categories[ci].Items = append(categories[ci].Items, normalizeItem(item))
	}
	return categories
}

func processCategories(cats []importedCategory) []models.MenuCategory {
	out := make([]models.MenuCategory, 0, len(cats))
	for i, cat := range cats {
		id := cat.ID
		if id == "" {
			id = models.Slugify(cat.Name)
		}
		items := make([]models.MenuItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, normalizeItem(item))
		}
		out = append(out, models.MenuCategory{
			ID:          id,
			Name:        cat.Name,
			Description: cat.Description,
			Icon:        cat.Icon,
			Order:       i,
			Items:       items,
		})
	}
	return out
}

func normalizeItem(item importedItem) models.MenuItem {
	id := item.ID
	if id == "" {
		id = models.Slugify(item.Name)
	}
	return models.MenuItem{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Price:       coercePrice(item.Price),
		Popular:     toBool(item.Popular, false),
		Featured:    toBool(item.Featured, false),
		Available:   boolPtr(toBool(item.Available, true)),
		Image:       item.Image,
	}
}

// mergeCategories starts from the stored categories; imported categories with
// a known id merge item-by-item (imported fields win), new ids append whole.
func mergeCategories(existing, imported []models.MenuCategory) []models.MenuCategory {
	merged := make([]models.MenuCategory, len(existing))
	copy(merged, existing)
	index := make(map[string]int, len(merged))
	for i, cat := range merged {
		index[cat.ID] = i
	}

	for _, cat := range imported {
		ci, ok := index[cat.ID]
		if !ok {
			index[cat.ID] = len(merged)
			merged = append(merged, cat)
			continue
		}
		target := &merged[ci]
		for _, item := range cat.Items {
			if ii := findItem(target.Items, item.ID); ii >= 0 {
				// priceVariants aren't carried by imports; keep the stored ones.
				if item.PriceVariants == nil {
					item.PriceVariants = target.Items[ii].PriceVariants
				}
				target.Items[ii] = item
			} else {
				target.Items = append(target.Items, item)
			}
		}
		if cat.Description != "" {
			target.Description = cat.Description
		}
		// Empty means the import never carried an icon; anything supplied wins.
		if cat.Icon != "" {
			target.Icon = cat.Icon
		}
	}
	return merged
}

func toBool(v any, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "1":
			return true
		case "":
			return fallback
		default:
			return false
		}
	case nil:
		return fallback
	}
	return fallback
}

// coercePrice accepts numbers or numeric strings; anything unparseable is 0.
func coercePrice(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func firstOf(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := row[key]; v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
