package resumepdf

import (
	"slices"
	"strings"
)

// Validate checks that every field the given sections will draw is
// present. Only the first projectLimit projects are checked; a negative
// limit checks them all. It returns the first problem found as a
// *ValidationError.
func Validate(c *Content, sections []Section, projectLimit int) error {
	if c == nil {
		return &ValidationError{Section: "content", Field: "document", Index: -1}
	}
	v := validator{}
	has := func(s Section) bool { return slices.Contains(sections, s) }

	if has(SectionHeader) {
		v.require("personalInfo", "name", -1, c.PersonalInfo.Name)
		v.require("personalInfo", "title", -1, c.PersonalInfo.Title)
	}
	if has(SectionContact) {
		pi := c.PersonalInfo
		if pi.Phone != "" || pi.Email != "" || pi.Location != "" || pi.Website != "" {
			v.require("labels", "contact", -1, c.Labels.Contact)
		}
		v.requireIf(pi.Phone != "", "labels", "phone", c.Labels.Phone)
		v.requireIf(pi.Email != "", "labels", "email", c.Labels.Email)
		v.requireIf(pi.Location != "", "labels", "location", c.Labels.Location)
		v.requireIf(pi.Website != "", "labels", "website", c.Labels.Website)
	}
	if has(SectionSkills) {
		v.skills("skills.programming", c.Skills.Programming)
		v.skills("skills.tools", c.Skills.Tools)
		v.requireIf(len(c.Skills.Programming) > 0, "labels", "programmingSkills", c.Labels.ProgrammingSkills)
		v.requireIf(len(c.Skills.Tools) > 0, "labels", "tools", c.Labels.Tools)
	}
	if has(SectionLanguages) && len(c.Skills.Languages) > 0 {
		v.skills("skills.languages", c.Skills.Languages)
		v.require("labels", "languages", -1, c.Labels.Languages)
		for _, t := range Tiers {
			v.require("skills.levels", string(t), -1, c.Skills.Levels[t])
		}
	}
	if has(SectionSummary) && hasText(c.Summary) {
		v.require("labels", "summary", -1, c.Labels.Summary)
	}
	if has(SectionExperience) && len(c.Experience) > 0 {
		v.require("labels", "experience", -1, c.Labels.Experience)
		for i, e := range c.Experience {
			v.require("experience", "position", i, e.Position)
			v.require("experience", "company", i, e.Company)
		}
	}
	if has(SectionEducation) && len(c.Education) > 0 {
		v.require("labels", "education", -1, c.Labels.Education)
		for i, e := range c.Education {
			v.require("education", "degree", i, e.Degree)
			v.require("education", "institution", i, e.Institution)
		}
	}
	if has(SectionCertificates) && len(c.Certificates) > 0 {
		v.require("labels", "certificates", -1, c.Labels.Certificates)
		for i, cert := range c.Certificates {
			v.require("certificates", "title", i, cert.Title)
		}
	}
	projects := c.Projects
	if projectLimit >= 0 && len(projects) > projectLimit {
		projects = projects[:projectLimit]
	}
	if has(SectionProjects) && len(projects) > 0 {
		v.require("labels", "projects", -1, c.Labels.Projects)
		for i, p := range projects {
			v.require("projects", "title", i, p.Title)
			if p.LiveLink != "" || p.SourceLink != "" {
				v.require("labels", "viewProject", -1, c.Labels.ViewProject)
			}
		}
	}
	if has(SectionGitHub) && c.PersonalInfo.GitHub != "" {
		v.require("labels", "github", -1, c.Labels.GitHub)
	}
	return v.err
}

type validator struct {
	err error
}

func (v *validator) require(section, field string, index int, value string) {
	if v.err == nil && strings.TrimSpace(value) == "" {
		v.err = &ValidationError{Section: section, Field: field, Index: index}
	}
}

func (v *validator) requireIf(cond bool, section, field, value string) {
	if cond {
		v.require(section, field, -1, value)
	}
}

func (v *validator) skills(section string, skills []Skill) {
	for i, s := range skills {
		v.require(section, "name", i, s.Name)
	}
}

func hasText(paragraphs []string) bool {
	for _, p := range paragraphs {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
