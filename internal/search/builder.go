// Package search turns structured search criteria into SQL filters over the
// doctor collection and orchestrates the AI search pipeline around them.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/daktarbari/doctor-directory-api/internal/lexicon"
	"github.com/daktarbari/doctor-directory-api/internal/models"
)

// Time-of-day buckets in zero-padded HH:MM form. A slot matches a bucket when
// the [start,end] intervals overlap.
var timeBuckets = map[string]struct{ start, end string }{
	models.TimeMorning:   {"08:00", "12:00"},
	models.TimeAfternoon: {"12:00", "17:00"},
	models.TimeEvening:   {"17:00", "22:00"},
}

var (
	weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	weekendNames = []string{"Saturday", "Sunday"}
)

// node is one typed predicate in the filter tree. Nodes accumulate with '?'
// placeholders and are renumbered to PostgreSQL $n positions in a single
// render pass, so no partially-built SQL ever escapes the builder.
type node interface {
	render(sb *strings.Builder, args *[]interface{})
}

type leaf struct {
	expr string
	vals []interface{}
}

func (l leaf) render(sb *strings.Builder, args *[]interface{}) {
	var used int
	for _, r := range l.expr {
		if r == '?' {
			*args = append(*args, l.vals[used])
			fmt.Fprintf(sb, "$%d", len(*args))
			used++
			continue
		}
		sb.WriteRune(r)
	}
}

type group struct {
	op       string
	children []node
}

func (g group) render(sb *strings.Builder, args *[]interface{}) {
	if len(g.children) == 1 {
		g.children[0].render(sb, args)
		return
	}
	sb.WriteString("(")
	for i, child := range g.children {
		if i > 0 {
			sb.WriteString(" " + g.op + " ")
		}
		child.render(sb, args)
	}
	sb.WriteString(")")
}

// Builder converts search criteria into a WHERE fragment over the doctors
// table (aliased d). Build is pure: the same criteria and clock always yield
// a structurally identical filter.
type Builder struct {
	lexicon *lexicon.Table
}

// NewBuilder constructs a Builder around an injected specialty table.
func NewBuilder(table *lexicon.Table) *Builder {
	return &Builder{lexicon: table}
}

// Build renders the filter for the given criteria. now anchors relative date
// requirements ("today", "tomorrow") to a concrete weekday.
func (b *Builder) Build(criteria models.SearchCriteria, now time.Time) (string, []interface{}, error) {
	root := group{op: "AND"}
	root.children = append(root.children, leaf{expr: "d.is_deleted = FALSE"})

	weekday, err := resolveWeekday(criteria, now)
	if err != nil {
		return "", nil, err
	}
	if weekday != "" {
		root.children = append(root.children, weekdayOpen(weekday))
	}

	if criteria.District != nil && strings.TrimSpace(*criteria.District) != "" {
		root.children = append(root.children, leaf{
			expr: "d.district ILIKE ?",
			vals: []interface{}{contains(*criteria.District)},
		})
	}

	if labels := b.specialtyLabels(criteria); len(labels) > 0 {
		or := group{op: "OR"}
		for _, label := range labels {
			pattern := contains(label)
			or.children = append(or.children,
				leaf{expr: "d.specialty ILIKE ?", vals: []interface{}{pattern}},
				leaf{expr: "EXISTS (SELECT 1 FROM unnest(d.specialty_list) AS sl WHERE sl ILIKE ?)", vals: []interface{}{pattern}},
				leaf{expr: "EXISTS (SELECT 1 FROM unnest(d.specialty_categories) AS sc WHERE sc ILIKE ?)", vals: []interface{}{pattern}},
			)
		}
		root.children = append(root.children, or)
	}

	if timeNode := timePreferences(criteria.TimePreferences); timeNode != nil {
		root.children = append(root.children, timeNode)
	}

	if criteria.HospitalPreference != nil && strings.TrimSpace(*criteria.HospitalPreference) != "" {
		pattern := contains(*criteria.HospitalPreference)
		root.children = append(root.children, group{op: "OR", children: []node{
			leaf{
				expr: "EXISTS (SELECT 1 FROM jsonb_array_elements(d.chambers) AS ch WHERE ch->>'hospital_name' ILIKE ?)",
				vals: []interface{}{pattern},
			},
			leaf{expr: "d.workplace ILIKE ?", vals: []interface{}{pattern}},
			leaf{expr: "d.source_hospital ILIKE ?", vals: []interface{}{pattern}},
		}})
	}

	if criteria.Urgency {
		// Heuristic: a doctor with several slots or visiting days offers more
		// appointment opportunities. It does not verify same-day availability.
		root.children = append(root.children, leaf{expr: `EXISTS (
			SELECT 1
			FROM jsonb_array_elements(d.chambers) AS ch,
			     jsonb_array_elements(COALESCE(ch->'visiting_hours', '[]'::jsonb)) AS vh
			WHERE jsonb_array_length(COALESCE(vh->'time_slots', '[]'::jsonb)) > 1
			   OR jsonb_array_length(COALESCE(vh->'visiting_days', '[]'::jsonb)) > 1
		)`})
	}

	sb := &strings.Builder{}
	var args []interface{}
	root.render(sb, &args)
	return sb.String(), args, nil
}

// specialtyLabels expands criteria into a deduplicated canonical label set:
// the verbatim specialty plus lexicon resolutions of the condition and every
// related condition. Unmapped terms contribute nothing.
func (b *Builder) specialtyLabels(criteria models.SearchCriteria) []string {
	var labels []string
	seen := make(map[string]struct{})
	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		key := strings.ToLower(label)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		labels = append(labels, label)
	}

	if criteria.Specialty != nil {
		add(*criteria.Specialty)
	}
	if criteria.Condition != nil {
		if label, ok := b.lexicon.Resolve(*criteria.Condition); ok {
			add(label)
		}
	}
	for _, condition := range criteria.RelatedConditions {
		if label, ok := b.lexicon.Resolve(condition); ok {
			add(label)
		}
	}
	return labels
}

// resolveWeekday maps the date requirement to a weekday name, or "" when no
// date constraint applies.
func resolveWeekday(criteria models.SearchCriteria, now time.Time) (string, error) {
	switch criteria.DateRequirement {
	case "", models.DateNone:
		return "", nil
	case models.DateToday:
		return now.Weekday().String(), nil
	case models.DateTomorrow:
		return now.AddDate(0, 0, 1).Weekday().String(), nil
	case models.DateSpecific:
		if criteria.SpecificDate == nil {
			return "", fmt.Errorf("specific_date requirement without a date")
		}
		day, err := time.Parse("2006-01-02", *criteria.SpecificDate)
		if err != nil {
			return "", fmt.Errorf("parse specific date %q: %w", *criteria.SpecificDate, err)
		}
		return day.Weekday().String(), nil
	default:
		return "", fmt.Errorf("unknown date requirement %q", criteria.DateRequirement)
	}
}

// weekdayOpen requires some chamber schedule to list the weekday as a
// visiting day and not as a closed day. closed_days wins when a day appears
// in both sets.
func weekdayOpen(weekday string) node {
	return leaf{
		expr: `EXISTS (
			SELECT 1
			FROM jsonb_array_elements(d.chambers) AS ch,
			     jsonb_array_elements(COALESCE(ch->'visiting_hours', '[]'::jsonb)) AS vh
			WHERE COALESCE(vh->'visiting_days', '[]'::jsonb) @> to_jsonb(?::text)
			  AND NOT COALESCE(vh->'closed_days', '[]'::jsonb) @> to_jsonb(?::text)
		)`,
		vals: []interface{}{weekday, weekday},
	}
}

// timePreferences renders the requested buckets as a disjunction. Unknown
// preference values are ignored.
func timePreferences(prefs []string) node {
	or := group{op: "OR"}
	for _, pref := range prefs {
		key := strings.ToLower(strings.TrimSpace(pref))
		if bucket, ok := timeBuckets[key]; ok {
			or.children = append(or.children, slotOverlap(bucket.start, bucket.end))
			continue
		}
		switch key {
		case models.TimeWeekday:
			or.children = append(or.children, daysOpen(weekdayNames))
		case models.TimeWeekend:
			or.children = append(or.children, daysOpen(weekendNames))
		}
	}
	if len(or.children) == 0 {
		return nil
	}
	return or
}

// slotOverlap requires at least one time slot whose interval overlaps the
// bucket: slot.start <= bucket.end AND slot.end >= bucket.start.
func slotOverlap(bucketStart, bucketEnd string) node {
	return leaf{
		expr: `EXISTS (
			SELECT 1
			FROM jsonb_array_elements(d.chambers) AS ch,
			     jsonb_array_elements(COALESCE(ch->'visiting_hours', '[]'::jsonb)) AS vh,
			     jsonb_array_elements(COALESCE(vh->'time_slots', '[]'::jsonb)) AS ts
			WHERE ts->>'start_time_24hr' <= ? AND ts->>'end_time_24hr' >= ?
		)`,
		vals: []interface{}{bucketEnd, bucketStart},
	}
}

// daysOpen requires some schedule to be open on any of the given weekdays.
func daysOpen(days []string) node {
	conditions := make([]string, 0, len(days))
	vals := make([]interface{}, 0, 2*len(days))
	for _, day := range days {
		conditions = append(conditions, "(COALESCE(vh->'visiting_days', '[]'::jsonb) @> to_jsonb(?::text) AND NOT COALESCE(vh->'closed_days', '[]'::jsonb) @> to_jsonb(?::text))")
		vals = append(vals, day, day)
	}
	expr := `EXISTS (
			SELECT 1
			FROM jsonb_array_elements(d.chambers) AS ch,
			     jsonb_array_elements(COALESCE(ch->'visiting_hours', '[]'::jsonb)) AS vh
			WHERE ` + strings.Join(conditions, " OR ") + `
		)`
	return leaf{expr: expr, vals: vals}
}

func contains(value string) string {
	return "%" + strings.TrimSpace(value) + "%"
}
