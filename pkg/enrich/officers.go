package enrich

import (
	"strconv"
	"strings"

	"github.com/agentstation/sirenrich/pkg/registry"
)

// legalFormWords mark an unnamed officer as a legal entity when they appear
// in its name.
var legalFormWords = map[string]bool{
	"SA": true, "SAS": true, "SARL": true, "SCI": true, "EURL": true,
}

// OfficersSummary is the flattened officer information for one row.
type OfficersSummary struct {
	// Principal is the youngest officer with a known birth year, or the
	// first named officer when no birth years are reported.
	Principal OfficerDetail

	// Alternates are the remaining deduplicated officers, in registry
	// order, capped by the rules.
	Alternates []OfficerDetail

	// FirstNames is the ordered, deduplicated sequence of first given
	// names across all officers.
	FirstNames []string

	// Display is the one-line combined officers string.
	Display string
}

// SummarizeOfficers derives the officer output fields from a candidate's
// officer list. currentYear anchors age computation.
func (r *Rules) SummarizeOfficers(officers []registry.Officer, currentYear int) OfficersSummary {
	var summary OfficersSummary
	if len(officers) == 0 {
		return summary
	}

	var (
		deduped      []OfficerDetail
		displayParts []string
		seenFirst    = make(map[string]bool)
		maxBirthYear string
	)

	for _, officer := range officers {
		detail := newOfficerDetail(officer, currentYear)

		// First given names: original officer order, later duplicates removed.
		if detail.FirstName != "" && !seenFirst[detail.FirstName] {
			seenFirst[detail.FirstName] = true
			summary.FirstNames = append(summary.FirstNames, detail.FirstName)
		}

		// Deduplicate officers on (surname, first given name); a repeat with
		// fuller given names wins.
		existing := -1
		for i, d := range deduped {
			if d.Surname == detail.Surname && d.FirstName == detail.FirstName {
				existing = i
				break
			}
		}
		if existing >= 0 {
			if len(detail.Prenoms) > len(deduped[existing].Prenoms) {
				deduped[existing] = detail
			}
		} else {
			deduped = append(deduped, detail)
		}

		// Principal: first named officer, displaced by anyone younger.
		if summary.Principal.Surname == "" && summary.Principal.FirstName == "" && detail.Surname != "" {
			summary.Principal = detail
		}
		if detail.birthYear != "" && detail.birthYear > maxBirthYear {
			maxBirthYear = detail.birthYear
			summary.Principal = detail
		}

		if part := detail.displayString(officer.AnneeDeNaissance); part != "" {
			displayParts = append(displayParts, part)
		}
	}

	summary.Display = strings.Join(displayParts, " | ")

	for _, d := range deduped {
		if d.Surname == summary.Principal.Surname && d.FirstName == summary.Principal.FirstName {
			continue
		}
		if len(summary.Alternates) >= r.MaxAlternates {
			break
		}
		summary.Alternates = append(summary.Alternates, d)
	}

	return summary
}

// newOfficerDetail flattens a registry officer into its output form.
func newOfficerDetail(officer registry.Officer, currentYear int) OfficerDetail {
	surname := strings.TrimSpace(officer.Nom)
	prenoms := strings.TrimSpace(officer.Prenoms)
	role := strings.TrimSpace(officer.Qualite)

	// Surnames sometimes carry a parenthetical alias; keep the main name.
	if idx := strings.Index(surname, "("); idx > 0 && strings.Contains(surname, ")") {
		surname = strings.TrimSpace(surname[:idx])
	}

	firstName := prenoms
	if idx := strings.IndexFunc(prenoms, func(c rune) bool { return c == ' ' }); idx > 0 {
		firstName = prenoms[:idx]
	}

	detail := OfficerDetail{
		Surname:   surname,
		FirstName: firstName,
		Prenoms:   prenoms,
		Role:      role,
		Corporate: isCorporateOfficer(officer, surname, prenoms),
		birthYear: strings.TrimSpace(officer.AnneeDeNaissance),
	}

	if detail.birthYear != "" {
		if year, err := strconv.Atoi(detail.birthYear); err == nil {
			detail.Age = strconv.Itoa(currentYear-year) + " ans"
		}
	}

	return detail
}

// isCorporateOfficer reports whether the officer is a legal entity: either
// the registry says so, or it has no given names and a legal-form word in
// its name.
func isCorporateOfficer(officer registry.Officer, surname, prenoms string) bool {
	if officer.IsCorporate() {
		return true
	}
	if prenoms != "" {
		return false
	}
	for _, word := range strings.Fields(surname) {
		if legalFormWords[word] {
			return true
		}
	}
	return false
}

// displayString renders one officer for the combined display column.
func (d OfficerDetail) displayString(birthYear string) string {
	var parts []string
	if d.Corporate {
		parts = append(parts, "[PM]")
	}
	if d.Surname != "" {
		parts = append(parts, d.Surname)
	}
	if d.Prenoms != "" {
		parts = append(parts, d.Prenoms)
	}
	if birthYear != "" {
		parts = append(parts, "("+birthYear+")")
	}
	if d.Role != "" {
		parts = append(parts, "- "+d.Role)
	}
	return strings.Join(parts, " ")
}
