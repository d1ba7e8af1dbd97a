package approval

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

// Property: RolesOverlap(a, b) == RolesOverlap(b, a) and RolesOverlap(a, nil) == false
func TestRolesOverlapProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("overlap is symmetric", prop.ForAll(
		func(a, b []string) bool {
			return RolesOverlap(a, b) == RolesOverlap(b, a)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("nothing overlaps an empty role list", prop.ForAll(
		func(a []string) bool {
			return !RolesOverlap(a, nil) && !RolesOverlap(a, []string{})
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("normalization is idempotent", prop.ForAll(
		func(a []string) bool {
			once := NormalizeRoles(a)
			twice := NormalizeRoles(once.Slice())
			if len(once) != len(twice) {
				return false
			}
			for role := range once {
				if _, ok := twice[role]; !ok {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}

// Property: a task without candidate roles is never restricted
func TestRestrictionWithoutCandidateRoles(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("no candidate roles, never blocked", prop.ForAll(
		func(userRoles []string, priorRoles []string) bool {
			target := newTask("T1", "D1", nil, nil)
			prior := newTask("T2", "D1", priorRoles, strPtr("u1"))
			identity := entity.Identity{SubjectID: "u1", Roles: userRoles}
			return !EvaluateSelfActionRestriction(target, []entity.ApprovalTask{target, prior}, identity)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: levels come out strictly ascending whatever the input order
func TestAggregateLevelsOrderingProperty(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("levels ascending and tasks conserved", prop.ForAll(
		func(levels []int) bool {
			tasks := make([]entity.ApprovalTask, 0, len(levels))
			for i, level := range levels {
				task := newTask(fmt.Sprintf("T%d", i), "D1", []string{"approver"}, nil)
				task.LevelNumber = level
				tasks = append(tasks, task)
			}

			summaries := AggregateLevels(tasks)
			total := 0
			for i, summary := range summaries {
				if i > 0 && summaries[i-1].Level >= summary.Level {
					return false
				}
				total += summary.Total
			}
			return total == len(tasks)
		},
		gen.SliceOf(gen.IntRange(1, 8)),
	))

	properties.TestingRun(t)
}

// Property: BuildTimeline output is non-decreasing by CreatedAt
func TestBuildTimelineOrderingProperty(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("timeline is chronological", prop.ForAll(
		func(offsets []int64) bool {
			events := make([]entity.InvoiceEvent, 0, len(offsets))
			for i, offset := range offsets {
				events = append(events, entity.InvoiceEvent{
					EventID:   fmt.Sprintf("e%d", i),
					EventType: entity.EventTypeApprovalActioned,
					CreatedAt: base.Add(time.Duration(offset) * time.Second),
				})
			}

			items := BuildTimeline(events)
			if len(items) != len(events) {
				return false
			}
			for i := 1; i < len(items); i++ {
				if items[i].CreatedAt.Before(items[i-1].CreatedAt) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 3600)),
	))

	properties.TestingRun(t)
}
