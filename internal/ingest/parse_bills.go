package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// BillRow is one bill entry from a LEGISinfo listing page.
type BillRow struct {
	Number           string
	Subject          string
	ParliamentNumber int
	Session          int
	SessionStart     *time.Time
	BillType         string
	Sponsor          string
	Status           string
	LatestActivity   string
}

var (
	parliamentRe = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\s+Parliament`)
	sessionRe    = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\s+[Ss]ession`)
)

// sessionDateLayout matches the session date range on bill listings.
const sessionDateLayout = "January 2, 2006"

// ParseBillListing extracts bills from one LEGISinfo listing page. An
// empty slice means the page carried no bill entries, which paginated
// crawls use as an end-of-data signal.
func ParseBillListing(page []byte) ([]BillRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse bill listing: %w", err)
	}

	numbers := collectText(doc, "h4.sr-only")
	if len(numbers) == 0 {
		doc.Find(`a[href*="/bill/"]`).Each(func(_ int, link *goquery.Selection) {
			if n := strings.TrimSpace(link.Text()); n != "" {
				numbers = append(numbers, n)
			}
		})
	}
	if len(numbers) == 0 {
		return nil, nil
	}

	subjects := collectText(doc, "h5")
	sessions := collectText(doc, "div.parliament-session")
	dates := collectText(doc, "div.session-date-range")
	sections := doc.Find("div.row.bill-attributes-section")

	rows := make([]BillRow, 0, len(numbers))
	for i, number := range numbers {
		row := BillRow{
			Number:  number,
			Subject: at(subjects, i),
			Session: 1,
		}

		sessionText := at(sessions, i)
		if m := parliamentRe.FindStringSubmatch(sessionText); m != nil {
			row.ParliamentNumber, _ = strconv.Atoi(m[1])
		}
		if m := sessionRe.FindStringSubmatch(sessionText); m != nil {
			row.Session, _ = strconv.Atoi(m[1])
		}

		if start, ok := parseSessionStart(at(dates, i)); ok {
			row.SessionStart = &start
		}

		if i < sections.Length() {
			section := sections.Eq(i)
			row.BillType = mapBillType(attribute(section, "Bill type"))
			row.Sponsor = attribute(section, "Sponsor")
			row.Status = mapBillStatus(attribute(section, "Current status"))
			row.LatestActivity = attribute(section, "Latest activity")
		} else {
			row.Status = "INTRODUCED"
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// attribute reads the value following a label div inside a bill
// attributes section.
func attribute(section *goquery.Selection, label string) string {
	value := ""
	section.Find("div.label").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if strings.TrimSpace(div.Text()) != label {
			return true
		}
		value = strings.TrimSpace(div.NextFiltered("div").Text())
		return false
	})
	return value
}

// parseSessionStart reads the start date from a session date range like
// "May 26, 2025 to present".
func parseSessionStart(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if idx := strings.Index(raw, " to "); idx >= 0 {
		raw = raw[:idx]
	}
	start, err := time.Parse(sessionDateLayout, strings.TrimSpace(raw))
	return start, err == nil
}

func mapBillType(raw string) string {
	lowered := strings.ToLower(raw)
	senate := strings.Contains(lowered, "senate")
	switch {
	case strings.Contains(lowered, "government") && senate:
		return "SENATE_GOVERNMENT"
	case strings.Contains(lowered, "government"):
		return "GOVERNMENT"
	case strings.Contains(lowered, "private member") && senate:
		return "SENATE_PRIVATE_MEMBER"
	case strings.Contains(lowered, "private member"):
		return "PRIVATE_MEMBER"
	case strings.Contains(lowered, "private"):
		return "PRIVATE"
	default:
		return ""
	}
}

func mapBillStatus(raw string) string {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "first reading"):
		return "FIRST_READING"
	case strings.Contains(lowered, "second reading"):
		return "SECOND_READING"
	case strings.Contains(lowered, "committee"):
		return "COMMITTEE"
	case strings.Contains(lowered, "report stage"):
		return "REPORT_STAGE"
	case strings.Contains(lowered, "third reading"):
		return "THIRD_READING"
	case strings.Contains(lowered, "senate"):
		return "SENATE"
	case strings.Contains(lowered, "royal assent"):
		return "ROYAL_ASSENT"
	case strings.Contains(lowered, "defeated"):
		return "DEFEATED"
	case strings.Contains(lowered, "withdrawn"):
		return "WITHDRAWN"
	default:
		return "INTRODUCED"
	}
}

func collectText(doc *goquery.Document, selector string) []string {
	var values []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.Text()))
	})
	return values
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
