package ingest

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// CommitteeRow is one committee from the Commons committee list.
type CommitteeRow struct {
	Acronym string
	Name    string
	Type    string
}

// CommitteeMemberRow is one member entry from a committee roster page.
type CommitteeMemberRow struct {
	Name string
	Role string
}

// committeeSections pairs list page section IDs with committee types,
// in page order.
var committeeSections = []struct {
	id            string
	committeeType string
}{
	{"standing-committees-section", "STANDING"},
	{"special-committees-section", "SPECIAL"},
	{"joint-committees-section", "JOINT"},
	{"other-committees-section", "OTHER"},
}

// ParseCommittees extracts committees from the Commons committee list
// page, typed by the section they appear under.
func ParseCommittees(page []byte) ([]CommitteeRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse committee list: %w", err)
	}

	var rows []CommitteeRow
	for _, section := range committeeSections {
		doc.Find("div#" + section.id + " div.accordion-item").Each(func(_ int, item *goquery.Selection) {
			acronym := text(item, "span.committee-acronym-cell")
			name := text(item, "span.committee-name")
			if acronym == "" || name == "" {
				return
			}
			rows = append(rows, CommitteeRow{
				Acronym: acronym,
				Name:    name,
				Type:    section.committeeType,
			})
		})
	}
	return rows, nil
}

// ParseCommitteeMembers extracts the roster from a committee members
// page. Chairs and vice-chairs come from their dedicated sections;
// remaining member cards are regular members, and the associate section
// contributes associates.
func ParseCommitteeMembers(page []byte) ([]CommitteeMemberRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse committee members: %w", err)
	}

	var rows []CommitteeMemberRow
	seen := make(map[string]bool)

	add := func(name, role string) {
		name = CleanName(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		rows = append(rows, CommitteeMemberRow{Name: name, Role: role})
	}

	collect := func(section *goquery.Selection, role string) {
		section.Find("span.committee-member-card").Each(func(_ int, card *goquery.Selection) {
			first := text(card, "span.first-name")
			last := text(card, "span.last-name")
			if first != "" && last != "" {
				add(first+" "+last, role)
			}
		})
	}

	collect(doc.Find("div#committee-chair"), "CHAIR")
	collect(doc.Find("div#committee-vice-chairs"), "VICE_CHAIR")
	collect(doc.Find("div#associate-members"), "ASSOCIATE")

	// Remaining cards on the page are regular members.
	doc.Find("span.committee-member-card").Each(func(_ int, card *goquery.Selection) {
		first := text(card, "span.first-name")
		last := text(card, "span.last-name")
		if first != "" && last != "" {
			add(first+" "+last, "MEMBER")
		}
	})

	return rows, nil
}
