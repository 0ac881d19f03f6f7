package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bassista/go_railops/internal/logger"
	"github.com/bassista/go_railops/internal/model"
	"github.com/bassista/go_railops/internal/provider"
	"github.com/bassista/go_railops/internal/registry"
	"github.com/bassista/go_railops/internal/seed"
)

// Toggle-speed actions.
const (
	ActionHold   = "hold"
	ActionResume = "resume"
)

// EmergencyStop stops every train.
func (s *Service) EmergencyStop(ctx context.Context, hub string) model.ActionResult {
	if s.bulkAction(ctx, "emergency-stop", s.prompts.EmergencyStop(hub, s.registry.SnapshotJSON()), emergencyStopPatch) {
		return model.ActionResult{Message: "Emergency stop initiated for all trains using AI simulation"}
	}
	return model.ActionResult{Message: "Emergency stop initiated for all trains"}
}

// BackupRoutes moves every train onto a backup route.
func (s *Service) BackupRoutes(ctx context.Context, hub string) model.ActionResult {
	if s.bulkAction(ctx, "backup-routes", s.prompts.BackupRoutes(hub, s.registry.SnapshotJSON()), backupRoutePatch) {
		return model.ActionResult{Message: "Backup routes activated for all trains using AI simulation"}
	}
	return model.ActionResult{Message: "Backup routes activated for all trains"}
}

// OptimizeRoutes reduces the delay of delayed trains.
func (s *Service) OptimizeRoutes(ctx context.Context, hub string) model.ActionResult {
	if s.bulkAction(ctx, "optimize-routes", s.prompts.OptimizeRoutes(hub, s.registry.SnapshotJSON()), optimizeRoutePatch) {
		return model.ActionResult{Message: "Route optimization completed using AI analysis"}
	}
	return model.ActionResult{Message: "Route optimization initiated for all trains"}
}

// bulkAction merges the provider's answer into the registry, or applies fallback to every
// record when the provider fails. An answer that updates no train counts as unparsable.
// It reports whether the provider answer was used.
func (s *Service) bulkAction(ctx context.Context, operation, prompt string, fallback func(int, model.TrainRecord) model.TrainPatch) bool {
	raw, err := s.provider.Generate(ctx, prompt)
	if err == nil {
		var batch []model.TrainPatch
		if batch, err = registry.ParseBatch(raw); err == nil {
			if err = s.merge(operation, batch); err == nil {
				return true
			}
		}
	}
	s.fallback(operation, err)
	s.registry.Transform(fallback)
	return false
}

// merge reconciles a provider batch. A batch that matched no record leaves the registry
// as it was and is reported as a parse failure.
func (s *Service) merge(operation string, batch []model.TrainPatch) error {
	res := s.registry.Reconcile(batch)
	logger.WithComponent("dashboard").WithField("operation", operation).
		Infof("provider update merged: updated=%d ignored=%d", res.Updated, res.Ignored)
	if res.Updated == 0 && s.registry.Len() > 0 {
		return fmt.Errorf("%w: provider update matched no train (%d candidates ignored)", provider.ErrParse, res.Ignored)
	}
	return nil
}

// PlatformAllocation assigns a platform to every train.
// The provider must answer with one object {trains, allocation}; anything else is a parse
// failure and the round-robin fallback is applied.
func (s *Service) PlatformAllocation(ctx context.Context, hub string) model.ActionResult {
	plan, err := ask(ctx, s, s.prompts.PlatformAllocation(hub, s.registry.SnapshotJSON()), func(p model.PlatformPlan) error {
		if len(p.Trains) == 0 {
			return errors.New("no trains in platform plan")
		}
		return nil
	})
	if err != nil {
		s.fallback("platform-allocation", err)
		s.registry.Transform(platformPatch)
		return model.ActionResult{Message: "Platform allocation optimized"}
	}

	if err := s.merge("platform-allocation", plan.Trains); err != nil {
		s.fallback("platform-allocation", err)
		s.registry.Transform(platformPatch)
		return model.ActionResult{Message: "Platform allocation optimized"}
	}
	result := model.ActionResult{Message: "Platform allocation optimized using AI"}
	if len(plan.Allocation) > 0 {
		result.Allocation = plan.Allocation
	}
	return result
}

// ScheduleMaintenance marks the trains chosen for maintenance, the provider's choice or the
// first train of the registry.
func (s *Service) ScheduleMaintenance(ctx context.Context, hub, maintenanceType string) (model.ActionResult, error) {
	maintenanceType = strings.TrimSpace(maintenanceType)
	if err := s.validate.Var(maintenanceType, "required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("maintenanceType: %w", err))
	}

	trains := s.registry.List()
	ids := make([]string, len(trains))
	for i, t := range trains {
		ids[i] = t.ID
	}

	plan, err := ask[model.MaintenancePlan](ctx, s, s.prompts.Maintenance(hub, maintenanceType, ids), nil)
	message := fmt.Sprintf("Maintenance (%s) scheduled", maintenanceType)
	if err != nil {
		s.fallback("schedule-maintenance", err)
		var first []string
		if len(ids) > 0 {
			first = ids[:1]
		}
		plan = seed.Maintenance(maintenanceType, first)
		message += " for train network"
	}
	if len(plan.AffectedTrains) == 0 && len(ids) > 0 {
		plan.AffectedTrains = ids[:1]
	}

	affected := make(map[string]bool, len(plan.AffectedTrains))
	for _, id := range plan.AffectedTrains {
		affected[id] = true
	}
	s.registry.Transform(func(_ int, rec model.TrainRecord) model.TrainPatch {
		if !affected[rec.ID] {
			return model.TrainPatch{}
		}
		return maintenancePatch()
	})

	return model.ActionResult{Message: message, Details: plan}, nil
}

// Reroute moves one train onto a new route. The requested stations always win over
// whatever route the provider proposes.
func (s *Service) Reroute(ctx context.Context, trainID string, stations []string) (model.ActionResult, error) {
	trainID = strings.TrimSpace(trainID)
	if err := s.validate.Var(trainID, "required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("trainId: %w", err))
	}
	cleaned := make([]string, 0, len(stations))
	for _, st := range stations {
		cleaned = append(cleaned, strings.TrimSpace(st))
	}
	if err := s.validate.Var(cleaned, "min=2,dive,required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("newRoute: %w", err))
	}

	train, ok := s.registry.FindByID(trainID)
	if !ok {
		return model.ActionResult{}, fmt.Errorf("%w: %s", model.ErrNotFound, trainID)
	}

	route := model.JoinRoute(cleaned)
	if s.singleAction(ctx, "reroute", trainID, s.prompts.Reroute(s.trainJSON(train), cleaned), func(p *model.TrainPatch) {
		p.Route = model.Str(route)
	}) {
		return model.ActionResult{Message: fmt.Sprintf("Train %s rerouted successfully using AI simulation", trainID)}, nil
	}
	if _, err := s.registry.UpdateOne(trainID, reroutePatch(route)); err != nil {
		return model.ActionResult{}, err
	}
	return model.ActionResult{Message: fmt.Sprintf("Train %s rerouted successfully", trainID)}, nil
}

// ToggleSpeed holds or resumes one train.
func (s *Service) ToggleSpeed(ctx context.Context, trainID, action string) (model.ActionResult, error) {
	trainID = strings.TrimSpace(trainID)
	action = strings.ToLower(strings.TrimSpace(action))
	if err := s.validate.Var(trainID, "required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("trainId: %w", err))
	}
	if err := s.validate.Var(action, "required,oneof=hold resume"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("action: %w", err))
	}

	train, ok := s.registry.FindByID(trainID)
	if !ok {
		return model.ActionResult{}, fmt.Errorf("%w: %s", model.ErrNotFound, trainID)
	}

	verb := "resumed"
	if action == ActionHold {
		verb = "held"
	}
	if s.singleAction(ctx, "toggle-speed", trainID, s.prompts.ToggleSpeed(s.trainJSON(train), action), nil) {
		return model.ActionResult{Message: fmt.Sprintf("Train %s %s using AI simulation", trainID, verb)}, nil
	}
	if _, err := s.registry.UpdateOne(trainID, toggleSpeedPatch(action)); err != nil {
		return model.ActionResult{}, err
	}
	return model.ActionResult{Message: fmt.Sprintf("Train %s %s", trainID, verb)}, nil
}

// singleAction merges the provider's single-train answer, after adjust, into the record.
// It reports whether the provider answer was applied; on false the caller applies its
// fallback patch. The registry is never left with a partial update.
func (s *Service) singleAction(ctx context.Context, operation, trainID, prompt string, adjust func(*model.TrainPatch)) bool {
	raw, err := s.provider.Generate(ctx, prompt)
	if err == nil {
		var patch model.TrainPatch
		if patch, err = registry.ParsePatch(raw); err == nil {
			if adjust != nil {
				adjust(&patch)
			}
			if _, err = s.registry.ReconcileOne(trainID, patch); err == nil {
				return true
			}
		}
	}
	s.fallback(operation, err)
	return false
}

// EmergencyContact logs a call to emergency services for a hub.
func (s *Service) EmergencyContact(ctx context.Context, hub, message string) (model.ActionResult, error) {
	hub, message = strings.TrimSpace(hub), strings.TrimSpace(message)
	if err := s.validate.Var(hub, "required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("hub: %w", err))
	}
	if err := s.validate.Var(message, "required"); err != nil {
		return model.ActionResult{}, s.invalid(fmt.Errorf("message: %w", err))
	}

	entry, err := ask[model.EmergencyLog](ctx, s, s.prompts.EmergencyContact(hub, message), nil)
	if err != nil {
		s.fallback("emergency-contact", err)
		logger.WithComponent("dashboard").Infof("emergency contact requested for hub %s: %s", hub, message)
		return model.ActionResult{Message: "Emergency services contacted"}, nil
	}
	return model.ActionResult{Message: "Emergency services contacted", Details: entry}, nil
}

func (s *Service) trainJSON(train model.TrainRecord) string {
	b, err := json.MarshalIndent(train, "", "  ")
	if err != nil {
		return train.ID
	}
	return string(b)
}
