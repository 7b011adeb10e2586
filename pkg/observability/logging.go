package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
)

// LoggingHooks writes every lifecycle event to the logger.
// Trial boundaries log at info level, phases and keys at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrialStart: func(ctx context.Context, e *domain.TrialEvent) {
			logger.InfoContext(ctx, "trial_start",
				"trial", e.TrialIndex,
				"kind", e.Kind,
				"condition", e.Condition,
				"onset", e.Onset,
			)
		},
		OnTrialEnd: func(ctx context.Context, e *domain.TrialEvent) {
			logger.InfoContext(ctx, "trial_end", "trial", e.TrialIndex, "onset", e.Onset)
		},
		OnPhaseEnter: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.DebugContext(ctx, "phase_enter", "trial", e.TrialIndex, "phase", e.Phase, "onset", e.Onset)
		},
		OnPhaseLeave: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.DebugContext(ctx, "phase_leave",
				"trial", e.TrialIndex,
				"phase", e.Phase,
				"duration", e.Duration,
				"cause", e.Cause,
			)
		},
		OnKey: func(ctx context.Context, e *domain.KeyEvent) {
			logger.DebugContext(ctx, "key", "key", e.Key, "trial", e.TrialIndex, "phase", e.Phase)
		},
	}
}
