package app

import (
	"context"
	"errors"

	"github.com/Erhabor-Fona/using-retriofit/internal/logger"
	"github.com/Erhabor-Fona/using-retriofit/pkg/apiclient"
	"github.com/Erhabor-Fona/using-retriofit/pkg/viewstate"
)

// User-facing failure wording. Everything that is not a connectivity problem
// collapses to the same fixed message; details stay in the logs.
const (
	failedMessage  = "Failed to load data"
	offlineMessage = "No internet connection"
)

// UserMessage chooses what a user should read for a failed request cycle.
func UserMessage(err error) string {
	switch apiclient.KindOf(err) {
	case apiclient.KindNetwork, apiclient.KindTimeout:
		return offlineMessage
	default:
		return failedMessage
	}
}

// observeFlow drains subscription events until the invocation identified by
// token reaches a terminal phase, rendering every transition on the way.
func observeFlow[T any](ctx context.Context, log logger.Logger, flow string, sub *viewstate.Subscription[T], token uint64) (viewstate.State[T], error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	for {
		select {
		case <-ctx.Done():
			return viewstate.State[T]{}, ctx.Err()
		case st, ok := <-sub.C:
			if !ok {
				return viewstate.State[T]{}, errors.New("subscription closed before the flow finished")
			}
			renderState(log, flow, st)
			if st.Seq == token && st.Terminal() {
				return st, nil
			}
		}
	}
}

// renderState prints one observed transition the way a screen would show it:
// a progress note while loading, the payload on success, the user-facing
// message on failure.
func renderState[T any](log logger.Logger, flow string, st viewstate.State[T]) {
	switch st.Phase {
	case viewstate.PhaseLoading:
		log.InfoObj("flow loading", "flow_state", map[string]any{
			"flow": flow,
			"seq":  st.Seq,
		})
	case viewstate.PhaseSucceeded:
		log.InfoObj("flow succeeded", "flow_state", map[string]any{
			"flow":    flow,
			"seq":     st.Seq,
			"payload": st.Value,
		})
	case viewstate.PhaseFailed:
		log.WarnObj("flow failed", "flow_state", map[string]any{
			"flow":    flow,
			"seq":     st.Seq,
			"message": UserMessage(st.Err),
			"cause":   st.Err.Error(),
		})
	}
}
