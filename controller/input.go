package controller

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

// inputAdapter wraps the input provider and hides actions that were missing when the controller started.
type inputAdapter struct {
	provider InputProvider
	// actions caches which actions were registered at startup, in validation order.
	actions *orderedmap.OrderedMap[string, bool]
}

func newInputAdapter(provider InputProvider) *inputAdapter {
	return &inputAdapter{
		provider: provider,
		actions:  orderedmap.NewOrderedMap[string, bool](),
	}
}

// validate records the registration state of the required and optional actions. Missing required
// actions are logged as warnings; missing optional actions only disable the feature bound to them.
func (in *inputAdapter) validate(log *logrus.Logger, required, optional []string) {
	for _, action := range required {
		ok := in.provider.HasAction(action)
		in.actions.Set(action, ok)
		if !ok {
			log.Warnf("input action '%s' is missing, related functionality disabled", action)
		}
	}
	for _, action := range optional {
		ok := in.provider.HasAction(action)
		in.actions.Set(action, ok)
		if !ok {
			log.WithField("action", action).Debug("optional input action is missing, feature disabled")
		}
	}
}

// registered returns true if the action was found during validation.
func (in *inputAdapter) registered(action string) bool {
	ok, _ := in.actions.Get(action)
	return ok
}

// isPressed returns true if the action was registered at startup and is currently held. Unknown actions
// are never pressed.
func (in *inputAdapter) isPressed(action string) bool {
	return in.registered(action) && in.provider.IsActionPressed(action)
}

// axis returns 1, 0 or -1 depending on which of the two actions are held.
func (in *inputAdapter) axis(positive, negative string) float32 {
	var value float32
	if in.isPressed(positive) {
		value++
	}
	if in.isPressed(negative) {
		value--
	}
	return value
}

// pressedValue returns 1 if the action is held and 0 otherwise.
func (in *inputAdapter) pressedValue(action string) float32 {
	if in.isPressed(action) {
		return 1
	}
	return 0
}
