package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MemberRow is one member entry extracted from the Commons search page.
type MemberRow struct {
	Honourific   string
	Name         string
	Affiliation  string
	Constituency string
	Province     string
	Status       string
}

// ParseMembers extracts member tiles from the Commons member search
// page. Status derives from the former-member tooltip on each tile;
// tiles without one are active.
func ParseMembers(page []byte) ([]MemberRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse members page: %w", err)
	}

	var rows []MemberRow
	doc.Find(".ce-mip-mp-tile-container").Each(func(_ int, tile *goquery.Selection) {
		name := CleanName(text(tile, ".ce-mip-mp-name"))
		if name == "" {
			return
		}

		status := "ACTIVE"
		if former := text(tile.Find(".ce-mip-mp-tooltip-former"), ".sr-only"); former != "" &&
			!strings.Contains(strings.ToLower(former), "active") {
			status = "FORMER"
		}

		rows = append(rows, MemberRow{
			Honourific:   text(tile, ".ce-mip-mp-honourable"),
			Name:         name,
			Affiliation:  text(tile, ".ce-mip-mp-party"),
			Constituency: text(tile, ".ce-mip-mp-constituency"),
			Province:     text(tile, ".ce-mip-mp-province"),
			Status:       status,
		})
	})
	return rows, nil
}

func text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}
