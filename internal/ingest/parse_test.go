package ingest

import (
	"testing"
	"time"
)

const membersFixture = `
<html><body>
<div class="ce-mip-mp-tile-container">
  <div class="ce-mip-mp-honourable">Hon.</div>
  <div class="ce-mip-mp-name">Jane Smith (Toronto Centre)</div>
  <div class="ce-mip-mp-party">Liberal</div>
  <div class="ce-mip-mp-constituency">Toronto Centre</div>
  <div class="ce-mip-mp-province">Ontario</div>
</div>
<div class="ce-mip-mp-tile-container">
  <div class="ce-mip-mp-name">John Doe</div>
  <div class="ce-mip-mp-party">Conservative</div>
  <div class="ce-mip-mp-constituency">Calgary Heritage</div>
  <div class="ce-mip-mp-province">Alberta</div>
  <div class="ce-mip-mp-tooltip-former"><span class="sr-only">Former Member of Parliament</span></div>
</div>
</body></html>`

func TestParseMembers(t *testing.T) {
	rows, err := ParseMembers([]byte(membersFixture))
	if err != nil {
		t.Fatalf("ParseMembers() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ParseMembers() returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Name != "Jane Smith" {
		t.Errorf("Name = %q, want %q", first.Name, "Jane Smith")
	}
	if first.Honourific != "Hon." {
		t.Errorf("Honourific = %q, want %q", first.Honourific, "Hon.")
	}
	if first.Affiliation != "Liberal" {
		t.Errorf("Affiliation = %q, want %q", first.Affiliation, "Liberal")
	}
	if first.Status != "ACTIVE" {
		t.Errorf("Status = %q, want ACTIVE", first.Status)
	}

	second := rows[1]
	if second.Status != "FORMER" {
		t.Errorf("Status = %q, want FORMER", second.Status)
	}
	if second.Province != "Alberta" {
		t.Errorf("Province = %q, want Alberta", second.Province)
	}
}

const voteListingFixture = `
<html><body><table>
<tr>
  <td><a class="ce-mip-table-number">No. 12</a></td>
  <td>Type</td>
  <td>C-5 Second Reading</td>
  <td>177 Yea / 140 Nay</td>
  <td>Agreed To</td>
  <td>Monday, June 9, 2025</td>
</tr>
<tr>
  <td><a class="ce-mip-table-number">No. 13</a></td>
  <td>Type</td>
  <td>Opposition Motion</td>
  <td>140 Yea / 177 Nay</td>
  <td>Negatived</td>
  <td>Tuesday, June 10, 2025</td>
</tr>
</table></body></html>`

func TestParseVoteListing(t *testing.T) {
	rows, err := ParseVoteListing([]byte(voteListingFixture))
	if err != nil {
		t.Fatalf("ParseVoteListing() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ParseVoteListing() returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.VoteNumber != 12 {
		t.Errorf("VoteNumber = %d, want 12", first.VoteNumber)
	}
	if first.Subject != "C-5 Second Reading" {
		t.Errorf("Subject = %q", first.Subject)
	}
	if first.Result != "AGREED" {
		t.Errorf("Result = %q, want AGREED", first.Result)
	}
	if first.VoteDate == nil || !first.VoteDate.Equal(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("VoteDate = %v, want 2025-06-09", first.VoteDate)
	}

	if rows[1].Result != "NEGATIVED" {
		t.Errorf("Result = %q, want NEGATIVED", rows[1].Result)
	}
}

const ballotsTableFixture = `
<html><body><table>
<tr><th>Member</th><th>Vote</th></tr>
<tr><td><a href="/members/en/jane-smith(1234)">Jane Smith (Toronto Centre)</a></td><td>Yea</td></tr>
<tr><td><a href="/members/en/john-doe(5678)">John Doe</a></td><td>Nay</td></tr>
<tr><td><a href="/members/en/alice-wong(9012)">Alice Wong</a></td><td>Paired</td></tr>
</table></body></html>`

func TestParseBallotsTable(t *testing.T) {
	ballots, err := ParseBallots([]byte(ballotsTableFixture))
	if err != nil {
		t.Fatalf("ParseBallots() error = %v", err)
	}

	expected := map[string]string{
		"Jane Smith": "YEA",
		"John Doe":   "NAY",
		"Alice Wong": "PAIRED",
	}
	if len(ballots) != len(expected) {
		t.Fatalf("ParseBallots() returned %d ballots, want %d", len(ballots), len(expected))
	}
	for name, choice := range expected {
		if ballots[name] != choice {
			t.Errorf("ballots[%q] = %q, want %q", name, ballots[name], choice)
		}
	}
}

const ballotsHeadingFixture = `
<html><body>
<h3>Yea (2)</h3>
<div>
  <a href="/members/en/jane-smith(1234)">Jane Smith</a>
  <a href="/members/en/john-doe(5678)">John Doe</a>
</div>
<h3>Nay (1)</h3>
<div>
  <a href="/members/en/alice-wong(9012)">Alice Wong</a>
</div>
</body></html>`

func TestParseBallotsHeadings(t *testing.T) {
	ballots, err := ParseBallots([]byte(ballotsHeadingFixture))
	if err != nil {
		t.Fatalf("ParseBallots() error = %v", err)
	}

	if ballots["Jane Smith"] != "YEA" {
		t.Errorf("Jane Smith = %q, want YEA", ballots["Jane Smith"])
	}
	if ballots["John Doe"] != "YEA" {
		t.Errorf("John Doe = %q, want YEA", ballots["John Doe"])
	}
	if ballots["Alice Wong"] != "NAY" {
		t.Errorf("Alice Wong = %q, want NAY", ballots["Alice Wong"])
	}
}

const billListingFixture = `
<html><body>
<h4 class="sr-only">C-5</h4>
<h5>An Act respecting one Canadian economy</h5>
<div class="parliament-session">45th Parliament, 1st Session</div>
<div class="session-date-range">May 26, 2025 to present</div>
<div class="row bill-attributes-section">
  <div class="label">Bill type</div><div>House Government Bill</div>
  <div class="label">Sponsor</div><div>Jane Smith</div>
  <div class="label">Current status</div><div>At second reading in the House of Commons</div>
  <div class="label">Latest activity</div><div>Debate at second reading</div>
</div>
</body></html>`

func TestParseBillListing(t *testing.T) {
	rows, err := ParseBillListing([]byte(billListingFixture))
	if err != nil {
		t.Fatalf("ParseBillListing() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ParseBillListing() returned %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.Number != "C-5" {
		t.Errorf("Number = %q, want C-5", row.Number)
	}
	if row.ParliamentNumber != 45 {
		t.Errorf("ParliamentNumber = %d, want 45", row.ParliamentNumber)
	}
	if row.Session != 1 {
		t.Errorf("Session = %d, want 1", row.Session)
	}
	if row.BillType != "GOVERNMENT" {
		t.Errorf("BillType = %q, want GOVERNMENT", row.BillType)
	}
	if row.Sponsor != "Jane Smith" {
		t.Errorf("Sponsor = %q, want Jane Smith", row.Sponsor)
	}
	if row.Status != "SECOND_READING" {
		t.Errorf("Status = %q, want SECOND_READING", row.Status)
	}
	if row.SessionStart == nil || !row.SessionStart.Equal(time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("SessionStart = %v, want 2025-05-26", row.SessionStart)
	}
}

func TestParseBillListingEmpty(t *testing.T) {
	rows, err := ParseBillListing([]byte("<html><body><p>No results found</p></body></html>"))
	if err != nil {
		t.Fatalf("ParseBillListing() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("ParseBillListing() returned %d rows, want 0", len(rows))
	}
}

func TestMapBillType(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"House Government Bill", "GOVERNMENT"},
		{"Senate Government Bill", "SENATE_GOVERNMENT"},
		{"Private Member's Bill", "PRIVATE_MEMBER"},
		{"Senate Private Member's Bill", "SENATE_PRIVATE_MEMBER"},
		{"Private Bill", "PRIVATE"},
		{"N/A", ""},
	}

	for _, tt := range tests {
		if got := mapBillType(tt.raw); got != tt.expected {
			t.Errorf("mapBillType(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

func TestMapBillStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"At second reading in the House of Commons", "SECOND_READING"},
		{"In committee", "COMMITTEE"},
		{"Royal assent received", "ROYAL_ASSENT"},
		{"At third reading in the Senate", "THIRD_READING"},
		{"Defeated", "DEFEATED"},
		{"Something else", "INTRODUCED"},
	}

	for _, tt := range tests {
		if got := mapBillStatus(tt.raw); got != tt.expected {
			t.Errorf("mapBillStatus(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

const committeesFixture = `
<html><body>
<div id="standing-committees-section">
  <div class="accordion-item">
    <span class="committee-acronym-cell">FINA</span>
    <span class="committee-name">Finance</span>
  </div>
  <div class="accordion-item">
    <span class="committee-acronym-cell">HESA</span>
    <span class="committee-name">Health</span>
  </div>
</div>
<div id="joint-committees-section">
  <div class="accordion-item">
    <span class="committee-acronym-cell">REGS</span>
    <span class="committee-name">Scrutiny of Regulations</span>
  </div>
</div>
</body></html>`

func TestParseCommittees(t *testing.T) {
	rows, err := ParseCommittees([]byte(committeesFixture))
	if err != nil {
		t.Fatalf("ParseCommittees() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ParseCommittees() returned %d rows, want 3", len(rows))
	}

	if rows[0].Acronym != "FINA" || rows[0].Type != "STANDING" {
		t.Errorf("rows[0] = %+v, want FINA STANDING", rows[0])
	}
	if rows[2].Acronym != "REGS" || rows[2].Type != "JOINT" {
		t.Errorf("rows[2] = %+v, want REGS JOINT", rows[2])
	}
}

const committeeMembersFixture = `
<html><body>
<div id="committee-chair">
  <span class="committee-member-card">
    <span class="first-name">Jane</span><span class="last-name">Smith</span>
  </span>
</div>
<div id="committee-vice-chairs">
  <span class="committee-member-card">
    <span class="first-name">John</span><span class="last-name">Doe</span>
  </span>
</div>
<div id="committee-members">
  <span class="committee-member-card">
    <span class="first-name">Alice</span><span class="last-name">Wong</span>
  </span>
</div>
<div id="associate-members">
  <span class="committee-member-card">
    <span class="first-name">Bob</span><span class="last-name">Lee</span>
  </span>
</div>
</body></html>`

func TestParseCommitteeMembers(t *testing.T) {
	rows, err := ParseCommitteeMembers([]byte(committeeMembersFixture))
	if err != nil {
		t.Fatalf("ParseCommitteeMembers() error = %v", err)
	}

	roles := make(map[string]string)
	for _, row := range rows {
		roles[row.Name] = row.Role
	}

	expected := map[string]string{
		"Jane Smith": "CHAIR",
		"John Doe":   "VICE_CHAIR",
		"Alice Wong": "MEMBER",
		"Bob Lee":    "ASSOCIATE",
	}
	for name, role := range expected {
		if roles[name] != role {
			t.Errorf("roles[%q] = %q, want %q", name, roles[name], role)
		}
	}
	if len(rows) != len(expected) {
		t.Errorf("ParseCommitteeMembers() returned %d rows, want %d", len(rows), len(expected))
	}
}
