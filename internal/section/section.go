package section

// Kind describes one résumé section collection: its route segment, the
// table backing it, the key the aggregate export files it under when that
// differs from the route, and (for list-valued kinds) the JSON key under
// which the individually addressable entries live.
type Kind struct {
	Name      string
	Table     string
	ExportKey string
	ListKey   string
}

// HasEntries reports whether the kind stores an embedded entry list.
func (k Kind) HasEntries() bool {
	return k.ListKey != ""
}

// ExportName returns the key this section uses in the aggregate export.
func (k Kind) ExportName() string {
	if k.ExportKey != "" {
		return k.ExportKey
	}
	return k.Name
}

// Kinds enumerates every résumé section, in export order. The certification
// routes are plural while the export payload keys the section in the
// singular, matching what the résumé renderer consumes.
var Kinds = []Kind{
	{Name: "personal", Table: "personal_sections"},
	{Name: "objective", Table: "objective_sections"},
	{Name: "experience", Table: "experience_sections", ListKey: "experiences"},
	{Name: "education", Table: "education_sections", ListKey: "education"},
	{Name: "skills", Table: "skills_sections"},
	{Name: "projects", Table: "projects_sections", ListKey: "project"},
	{Name: "certifications", Table: "certification_sections", ExportKey: "certification"},
	{Name: "reference", Table: "reference_sections", ListKey: "referees"},
}

// Tables returns the table names for all section kinds, for migration.
func Tables() []string {
	tables := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		tables = append(tables, kind.Table)
	}
	return tables
}
