package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// SkillsModule rejects placing a job on an actor whose vehicle lacks any
// skill the job requires.
type SkillsModule struct{}

// NewSkillsModule builds the skills module.
func NewSkillsModule() *SkillsModule { return &SkillsModule{} }

// Name implements core.Module.
func (m *SkillsModule) Name() string { return "skills" }

// Priority implements core.Module. Cheap and route-scoped, so it runs
// before the per-activity modules.
func (m *SkillsModule) Priority() int { return 1 }

// HardRoute implements core.Module.
func (m *SkillsModule) HardRoute(routeCtx *core.RouteContext, job *core.Job) (bool, core.UnassignedCode) {
	if hasAllSkills(routeCtx.Actor().Vehicle.Skills, job.Skills) {
		return true, 0
	}
	return false, core.CodeSkillMismatch
}

// HardActivity implements core.Module: skills are a route-level property,
// so every activity inherits the route's verdict.
func (m *SkillsModule) HardActivity(*core.RouteContext, *core.ActivityContext) (bool, core.UnassignedCode) {
	return true, 0
}

// SoftCost implements core.Module.
func (m *SkillsModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module; skills derive no state.
func (m *SkillsModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module.
func (m *SkillsModule) AcceptSolutionState(*core.SolutionContext) {}

func hasAllSkills(available, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(available))
	for _, s := range available {
		have[s] = true
	}
	for _, s := range required {
		if !have[s] {
			return false
		}
	}
	return true
}
