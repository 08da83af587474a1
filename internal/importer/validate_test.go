package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validSchema() *ImportSchema {
	return &ImportSchema{
		Template: TemplateImport{Name: "Client onboarding"},
		Sections: []SectionImport{
			{Ref: "kickoff", Title: "Kickoff"},
			{Ref: "build", Title: "Build"},
		},
		Tasks: []TaskImport{
			{Ref: "t1", SectionRef: "kickoff", Title: "Intro call"},
			{Ref: "t2", SectionRef: "kickoff", ParentRef: strPtr("t1"), Title: "Send agenda"},
			{Ref: "t3", SectionRef: "build", Title: "Draft site"},
		},
	}
}

func TestValidateImportSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validSchema()))
}

func TestValidateImportSchema_MissingTemplateName(t *testing.T) {
	schema := validSchema()
	schema.Template.Name = ""

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "template.name is required")
}

func TestValidateImportSchema_SectionErrors(t *testing.T) {
	schema := validSchema()
	schema.Sections = append(schema.Sections,
		SectionImport{Ref: "kickoff", Title: "Duplicate"},
		SectionImport{Ref: "", Title: ""},
	)

	joined := joinErrors(ValidateImportSchema(schema))
	assert.Contains(t, joined, `duplicate ref "kickoff"`)
	assert.Contains(t, joined, "sections[3].ref is required")
	assert.Contains(t, joined, "sections[3].title is required")
}

func TestValidateImportSchema_TaskErrors(t *testing.T) {
	schema := validSchema()
	schema.Tasks = append(schema.Tasks,
		TaskImport{Ref: "t4", SectionRef: "nope", Title: "Bad section"},
		TaskImport{Ref: "t5", SectionRef: "build", ParentRef: strPtr("t99"), Title: "Bad parent"},
		TaskImport{Ref: "t6", SectionRef: "build", ParentRef: strPtr("t1"), Title: "Cross-section parent"},
		TaskImport{Ref: "t7", SectionRef: "build", ParentRef: strPtr("t7"), Title: "Self parent"},
		TaskImport{Ref: "t8", SectionRef: "build", Title: ""},
	)

	joined := joinErrors(ValidateImportSchema(schema))
	assert.Contains(t, joined, `section_ref: ref "nope" not found`)
	assert.Contains(t, joined, `ref "t99" not found (must appear earlier in tasks list)`)
	assert.Contains(t, joined, `ref "t1" belongs to section "kickoff", not "build"`)
	assert.Contains(t, joined, "task cannot be its own parent")
	assert.Contains(t, joined, "tasks[7].title is required")
}

func TestValidateImportSchema_ForwardParentRefRejected(t *testing.T) {
	// Requiring parents to appear earlier makes cycles unrepresentable.
	schema := validSchema()
	schema.Tasks = []TaskImport{
		{Ref: "a", SectionRef: "kickoff", ParentRef: strPtr("b"), Title: "A"},
		{Ref: "b", SectionRef: "kickoff", ParentRef: strPtr("a"), Title: "B"},
	}

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `ref "b" not found`)
}

func TestValidateImportSchema_Dates(t *testing.T) {
	schema := validSchema()
	schema.Tasks[0].DueDate = strPtr("03/15/2026")

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "expected YYYY-MM-DD")

	schema.Tasks[0].DueDate = strPtr("2026-03-15")
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_NegativeDays(t *testing.T) {
	schema := validSchema()
	schema.Defaults = &DefaultsImport{EstimatedDays: intPtr(-1)}
	schema.Tasks[0].EstimatedDays = intPtr(-2)
	schema.Tasks[0].OffsetDays = intPtr(-3)

	joined := joinErrors(ValidateImportSchema(schema))
	assert.Contains(t, joined, "defaults.estimated_days must not be negative")
	assert.Contains(t, joined, "tasks[0].estimated_days must not be negative")
	assert.Contains(t, joined, "tasks[0].offset_days must not be negative")
}

func joinErrors(errs []error) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}
