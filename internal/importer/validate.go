package importer

import (
	"fmt"
	"time"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Template.Name == "" {
		errs = append(errs, fmt.Errorf("template.name is required"))
	}
	errs = append(errs, validateDefaults(schema.Defaults)...)

	sectionRefs := make(map[string]bool)
	errs = append(errs, validateSections(schema.Sections, sectionRefs)...)
	errs = append(errs, validateTasks(schema.Tasks, sectionRefs)...)

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.EstimatedDays != nil && *d.EstimatedDays < 0 {
		errs = append(errs, fmt.Errorf("defaults.estimated_days must not be negative"))
	}

	return errs
}

func validateSections(sections []SectionImport, sectionRefs map[string]bool) []error {
	var errs []error

	for i, s := range sections {
		prefix := fmt.Sprintf("sections[%d]", i)

		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if sectionRefs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, s.Ref))
		} else {
			sectionRefs[s.Ref] = true
		}

		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, sectionRefs map[string]bool) []error {
	var errs []error

	// ref -> section_ref, for parent containment checks
	taskSections := make(map[string]string)

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := taskSections[t.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			taskSections[t.Ref] = t.SectionRef
		}

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		if t.SectionRef == "" {
			errs = append(errs, fmt.Errorf("%s.section_ref is required", prefix))
		} else if !sectionRefs[t.SectionRef] {
			errs = append(errs, fmt.Errorf("%s.section_ref: ref %q not found in sections", prefix, t.SectionRef))
		}

		if t.ParentRef != nil && *t.ParentRef != "" {
			parentSection, ok := taskSections[*t.ParentRef]
			switch {
			case *t.ParentRef == t.Ref:
				errs = append(errs, fmt.Errorf("%s.parent_ref: task cannot be its own parent", prefix))
			case !ok:
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in tasks list)", prefix, *t.ParentRef))
			case parentSection != t.SectionRef:
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q belongs to section %q, not %q", prefix, *t.ParentRef, parentSection, t.SectionRef))
			}
		}

		if t.EstimatedDays != nil && *t.EstimatedDays < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_days must not be negative", prefix))
		}
		if t.OffsetDays != nil && *t.OffsetDays < 0 {
			errs = append(errs, fmt.Errorf("%s.offset_days must not be negative", prefix))
		}

		errs = append(errs, validateOptionalDate(prefix+".due_date", t.DueDate)...)
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
