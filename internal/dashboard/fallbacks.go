package dashboard

import (
	"fmt"

	"github.com/bassista/go_railops/internal/model"
)

// Local transformations applied when the provider cannot answer a control action.
// Each returns the patch for one record.

func emergencyStopPatch(_ int, rec model.TrainRecord) model.TrainPatch {
	return model.TrainPatch{
		Speed:        model.Int(0),
		Status:       model.Str(model.StatusEmergencyStopped),
		StatusColor:  model.Str(model.ColorDestructive),
		ETA:          model.Str(model.ETAPendingEmergency),
		DelayMinutes: model.Int(rec.DelayMinutes + 30),
	}
}

func backupRoutePatch(_ int, rec model.TrainRecord) model.TrainPatch {
	origin, dest := rec.Endpoints()
	return model.TrainPatch{
		Route:        model.Str(model.JoinRoute([]string{origin, "Backup Station", dest})),
		Status:       model.Str(model.StatusOnBackupRoute),
		StatusColor:  model.Str(model.ColorWarning),
		ETA:          model.Str(model.ETARecalculatingBackup),
		DelayMinutes: model.Int(rec.DelayMinutes + 15),
	}
}

// optimizeRoutePatch only touches delayed trains.
func optimizeRoutePatch(_ int, rec model.TrainRecord) model.TrainPatch {
	if rec.DelayMinutes <= 0 {
		return model.TrainPatch{}
	}
	return model.TrainPatch{
		DelayMinutes: model.Int(rec.DelayMinutes * 8 / 10),
		ETA:          model.Str(model.ETAOptimized),
		Status:       model.Str(model.StatusOptimizedRoute),
		StatusColor:  model.Str(model.ColorSuccess),
	}
}

// platformPatch assigns platforms round-robin over the 16 platforms of the hub.
func platformPatch(i int, rec model.TrainRecord) model.TrainPatch {
	platform := i%16 + 1
	p := model.TrainPatch{Platform: model.Int(platform)}
	if rec.NextStop == model.NextStopSignalClearance {
		p.NextStop = model.Str(fmt.Sprintf("Platform %d", platform))
	}
	if rec.ETA == model.ETAPending {
		p.ETA = model.Str(model.ETARecalculating)
	}
	return p
}

func maintenancePatch() model.TrainPatch {
	return model.TrainPatch{
		Status:      model.Str(model.StatusScheduledMaintenance),
		StatusColor: model.Str(model.ColorWarning),
		ETA:         model.Str(model.ETAMaintenance),
	}
}

func reroutePatch(route string) model.TrainPatch {
	return model.TrainPatch{
		Route:       model.Str(route),
		ETA:         model.Str(model.ETARecalculating),
		Status:      model.Str(model.StatusRerouted),
		StatusColor: model.Str(model.ColorWarning),
	}
}

func toggleSpeedPatch(action string) model.TrainPatch {
	if action == ActionHold {
		return model.TrainPatch{
			Speed:       model.Int(0),
			Status:      model.Str(model.StatusHeld),
			StatusColor: model.Str(model.ColorWarning),
			ETA:         model.Str(model.ETAOnHold),
		}
	}
	return model.TrainPatch{
		Speed:       model.Int(100),
		Status:      model.Str(model.StatusResumed),
		StatusColor: model.Str(model.ColorSuccess),
		ETA:         model.Str(model.ETARecalculating),
	}
}
