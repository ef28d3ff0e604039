package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// VoteRow is one vote entry from a parliament-session vote listing.
type VoteRow struct {
	VoteNumber int
	Subject    string
	Result     string
	VoteDate   *time.Time
}

// voteDateLayout matches the long-form dates on the vote listing page.
const voteDateLayout = "Monday, January 2, 2006"

// ParseVoteListing extracts votes from the Commons vote listing for one
// parliament-session. Each table row carries the vote number, subject,
// totals, result, and date.
func ParseVoteListing(page []byte) ([]VoteRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse vote listing: %w", err)
	}

	var rows []VoteRow
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		numberText := strings.TrimSpace(tr.Find(".ce-mip-table-number").First().Text())
		if numberText == "" {
			return
		}

		number, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(numberText, "No. ")))
		if err != nil {
			return
		}

		cells := tr.Find("td")
		if cells.Length() < 6 {
			return
		}

		row := VoteRow{
			VoteNumber: number,
			Subject:    strings.TrimSpace(cells.Eq(2).Text()),
			Result:     mapResult(cells.Eq(4).Text()),
		}

		if date, err := time.Parse(voteDateLayout, strings.TrimSpace(cells.Eq(5).Text())); err == nil {
			row.VoteDate = &date
		}

		rows = append(rows, row)
	})
	return rows, nil
}

func mapResult(raw string) string {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "agreed"):
		return "AGREED"
	case strings.Contains(lowered, "tie"):
		return "TIE"
	default:
		return "NEGATIVED"
	}
}

// ParseBallots extracts per-member choices from a vote detail page.
// Member rows inside tables are checked for an explicit choice cell
// first; tables and link groups without one inherit the choice named by
// their nearest preceding section heading.
func ParseBallots(page []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse vote detail: %w", err)
	}

	ballots := make(map[string]string)

	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find(`a[href*="/members/en/"]`).First()
		if link.Length() == 0 {
			return
		}

		name := CleanName(link.Text())
		if len(name) <= 3 {
			return
		}

		choice := ""
		tr.Find("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			choice = cellChoice(cell.Text())
			return choice == ""
		})

		if choice == "" {
			choice = headingChoice(tr.Closest("table"))
		}
		if choice != "" {
			ballots[name] = choice
		}
	})

	if len(ballots) > 0 {
		return ballots, nil
	}

	// Fallback for pages that group member links under yea/nay headings
	// without a table.
	doc.Find("h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		choice := sectionChoice(heading.Text())
		if choice == "" {
			return
		}

		section := heading
		for range 5 {
			section = section.Next()
			if section.Length() == 0 || isHeading(section) {
				break
			}
			section.Find(`a[href*="/members/en/"]`).Each(func(_ int, link *goquery.Selection) {
				name := CleanName(link.Text())
				if len(name) > 3 {
					if _, ok := ballots[name]; !ok {
						ballots[name] = choice
					}
				}
			})
		}
	})

	return ballots, nil
}

// cellChoice maps an exact rendered choice cell to a stored ballot
// choice. Only whole-cell matches count so subject text never misreads
// as a choice.
func cellChoice(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "YEA", "AGREED", "FOR":
		return "YEA"
	case "NAY", "NEGATIVED", "AGAINST":
		return "NAY"
	case "PAIRED":
		return "PAIRED"
	}
	return ""
}

// sectionChoice maps section heading text to a ballot choice, accepting
// the choice word anywhere in the heading.
func sectionChoice(raw string) string {
	if choice := cellChoice(raw); choice != "" {
		return choice
	}

	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "yea") && !strings.Contains(lowered, "nay"):
		return "YEA"
	case strings.Contains(lowered, "nay") && !strings.Contains(lowered, "yea"):
		return "NAY"
	case strings.Contains(lowered, "paired"):
		return "PAIRED"
	}
	return ""
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// headingChoice walks preceding siblings of a member table looking for
// a section heading that names the choice.
func headingChoice(table *goquery.Selection) string {
	sibling := table
	for range 5 {
		sibling = sibling.Prev()
		if sibling.Length() == 0 {
			return ""
		}
		if choice := sectionChoice(sibling.Text()); choice != "" {
			return choice
		}
	}
	return ""
}
